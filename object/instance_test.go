package object

import (
	"context"
	"testing"
	"time"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/query"
	"github.com/orgbase/orgcore/schema"
	"github.com/orgbase/orgcore/transport"
)

func patientSchema() map[string]any {
	return map[string]any{
		"_id":  "5f0000000000000000000100",
		"name": "c_patient",
		"properties": []any{
			map[string]any{"name": "name", "type": "String", "readAccess": float64(4)},
			map[string]any{"name": "c_age", "type": "Number"},
			map[string]any{"name": "c_active", "type": "Boolean"},
			map[string]any{"name": "c_dob", "type": "Date", "dateOnly": true},
			map[string]any{"name": "c_record", "type": "ObjectId"},
			map[string]any{"name": "c_physician", "type": "Reference"},
			map[string]any{"name": "c_tags", "type": "String[]"},
			map[string]any{"name": "c_meta", "type": "Any"},
			map[string]any{
				"name": "c_addr", "type": "Document",
				"properties": []any{
					map[string]any{"name": "c_city", "type": "String"},
					map[string]any{"name": "c_zip", "type": "String"},
					map[string]any{
						"name": "c_geo", "type": "Document",
						"properties": []any{
							map[string]any{"name": "c_lat", "type": "Number"},
						},
					},
				},
			},
		},
	}
}

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	fetcher := transport.FetcherFunc(func(ctx context.Context, target transport.Target, params *query.Parameters) (*transport.Page, error) {
		return &transport.Page{Items: []map[string]any{patientSchema()}}, nil
	})
	reg := schema.NewRegistry(fetcher)
	done := make(chan struct{})
	reg.Load(context.Background(), func(defs []*schema.ObjectDefinition, flt *fault.Fault) {
		close(done)
	})
	<-done
	return reg
}

func patientAttrs() map[string]any {
	return map[string]any{
		"_id":      "5f0000000000000000000001",
		"object":   "c_patient",
		"access":   float64(6),
		"created":  "2021-03-01T10:00:00.000Z",
		"ETag":     "etag-1",
		"name":     "Ada",
		"c_age":    float64(42),
		"c_active": true,
		"c_dob":    "1983-05-05",
		"c_record": "5f0000000000000000000002",
		"c_physician": map[string]any{
			"_id":    "5f0000000000000000000003",
			"object": "account",
			"path":   "/accounts/5f0000000000000000000003",
		},
		"c_tags": []any{"alpha", "beta"},
		"c_meta": map[string]any{"k": "v"},
		"c_addr": map[string]any{
			"c_city": "Geneva",
			"c_zip":  "1201",
			"c_geo":  map[string]any{"c_lat": float64(46.2)},
		},
	}
}

func newPatient(t *testing.T) *Instance {
	t.Helper()
	inst, flt := NewInstance(patientAttrs(), testRegistry(t))
	if flt != nil {
		t.Fatalf("NewInstance failed: %v", flt)
	}
	return inst
}

func TestConstructionFailsWithoutDefinition(t *testing.T) {
	attrs := patientAttrs()
	attrs["object"] = "c_never_heard_of"
	if _, flt := NewInstance(attrs, testRegistry(t)); flt == nil {
		t.Fatal("expected construction to fail for unresolved definition")
	}
}

func TestTypedAccessors(t *testing.T) {
	inst := newPatient(t)

	if s, ok := inst.StringValue("name"); !ok || s != "Ada" {
		t.Errorf("StringValue(name) = %q, %v", s, ok)
	}
	if n, ok := inst.NumberValue("c_age"); !ok || n != 42 {
		t.Errorf("NumberValue(c_age) = %v, %v", n, ok)
	}
	if b, ok := inst.BoolValue("c_active"); !ok || !b {
		t.Errorf("BoolValue(c_active) = %v, %v", b, ok)
	}
	if d, ok := inst.DateValue("c_dob"); !ok || d.Year() != 1983 {
		t.Errorf("DateValue(c_dob) = %v, %v", d, ok)
	}
	if id, ok := inst.ObjectIDValue("c_record"); !ok || id.String() != "5f0000000000000000000002" {
		t.Errorf("ObjectIDValue(c_record) = %v, %v", id, ok)
	}
	if m, ok := inst.AnyValue("c_meta"); !ok || m["k"] != "v" {
		t.Errorf("AnyValue(c_meta) = %v, %v", m, ok)
	}
	if ref, ok := inst.ReferenceValue("c_physician"); !ok || ref.Object != "account" {
		t.Errorf("ReferenceValue(c_physician) = %+v, %v", ref, ok)
	}
	if arr, ok := inst.ArrayValue("c_tags"); !ok || len(arr) != 2 {
		t.Errorf("ArrayValue(c_tags) = %v, %v", arr, ok)
	} else if s, ok := arr[0].Str(); !ok || s != "alpha" {
		t.Errorf("c_tags[0] = %q, %v", s, ok)
	}
}

func TestTypeMismatchIsSoft(t *testing.T) {
	inst := newPatient(t)
	if _, ok := inst.NumberValue("name"); ok {
		t.Error("NumberValue on a String property should report absence")
	}
	if _, ok := inst.StringValue("c_age"); ok {
		t.Error("StringValue on a Number property should report absence")
	}
	if _, ok := inst.ReferenceValue("c_meta"); ok {
		t.Error("ReferenceValue on an Any property should report absence")
	}
}

func TestValueAtPath(t *testing.T) {
	inst := newPatient(t)

	v, ok := inst.ValueAtPath("c_addr.c_city")
	if !ok {
		t.Fatal("c_addr.c_city not found")
	}
	if s, ok := v.Str(); !ok || s != "Geneva" {
		t.Errorf("c_addr.c_city = %q, %v", s, ok)
	}

	v, ok = inst.ValueAtPath("c_addr.c_geo.c_lat")
	if !ok {
		t.Fatal("c_addr.c_geo.c_lat not found")
	}
	if n, ok := v.Number(); !ok || n != 46.2 {
		t.Errorf("c_addr.c_geo.c_lat = %v, %v", n, ok)
	}

	// Crossing a non-Document segment is absence, not a crash.
	if _, ok := inst.ValueAtPath("c_addr.c_city.c_zip"); ok {
		t.Error("path through a String segment should report absence")
	}
	if _, ok := inst.ValueAtPath("name.sub"); ok {
		t.Error("path through a top-level String should report absence")
	}
	if _, ok := inst.ValueAtPath("missing.path"); ok {
		t.Error("unknown root segment should report absence")
	}
}

func TestTypeOf(t *testing.T) {
	inst := newPatient(t)
	if got := inst.TypeOf("c_addr"); got != schema.TypeDocument {
		t.Errorf("TypeOf(c_addr) = %v, want Document", got)
	}
	if got := inst.TypeOf("no_such"); got != schema.TypeUnknown {
		t.Errorf("TypeOf(no_such) = %v, want Unknown", got)
	}
}

func TestScalarAttributes(t *testing.T) {
	inst := newPatient(t)
	if inst.ID.String() != "5f0000000000000000000001" {
		t.Errorf("ID = %s", inst.ID)
	}
	if inst.ETag != "etag-1" {
		t.Errorf("ETag = %s", inst.ETag)
	}
	if inst.Created.IsZero() {
		t.Error("Created not parsed")
	}
	if !inst.Access.Valid() {
		t.Error("Access not parsed")
	}
}

func TestSynchronizeReplacesWholesale(t *testing.T) {
	inst := newPatient(t)

	refreshed := patientAttrs()
	refreshed["name"] = "Grace"
	refreshed["ETag"] = "etag-2"
	delete(refreshed, "c_age")

	fetcher := transport.FetcherFunc(func(ctx context.Context, target transport.Target, params *query.Parameters) (*transport.Page, error) {
		if target.Context != "c_patients" || target.ObjectID != inst.ID.String() {
			t.Errorf("unexpected target %+v", target)
		}
		return &transport.Page{Items: []map[string]any{refreshed}}, nil
	})

	done := make(chan struct{})
	inst.Synchronize(context.Background(), fetcher, nil, func(got *Instance, flt *fault.Fault) {
		if flt != nil {
			t.Errorf("sync fault: %v", flt)
		}
		close(done)
	})
	<-done

	if s, _ := inst.StringValue("name"); s != "Grace" {
		t.Errorf("name after sync = %q, want Grace", s)
	}
	if inst.ETag != "etag-2" {
		t.Errorf("ETag after sync = %q", inst.ETag)
	}
	if _, ok := inst.NumberValue("c_age"); ok {
		t.Error("dropped property survived resynchronization")
	}
}

func TestDecodeDateFull(t *testing.T) {
	d := &decoder{}
	def := schema.PropertyFromAttributes(map[string]any{"name": "at", "type": "Date"}, nil)
	v := d.decodeValue(def, "2021-03-01T10:30:00.000Z")
	got, ok := v.Date()
	if !ok {
		t.Fatal("date not decoded")
	}
	want := time.Date(2021, 3, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("date = %v, want %v", got, want)
	}
}
