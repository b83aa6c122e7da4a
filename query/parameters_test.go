package query

import (
	"net/url"
	"testing"
)

func TestFactorySerialization(t *testing.T) {
	tests := []struct {
		name   string
		params *Parameters
		want   url.Values
	}{
		{
			name:   "where greater than",
			params: WhereGreaterThan("_id", "5f01", ""),
			want:   url.Values{"where": {`{"_id":{"$gt":"5f01"}}`}},
		},
		{
			name:   "prefixed where",
			params: WhereLessThan("_id", "5f01", "c_participants"),
			want:   url.Values{"c_participants.where": {`{"_id":{"$lt":"5f01"}}`}},
		},
		{
			name:   "ordered sort keeps field order",
			params: WithOrderedSort([]SortField{{Name: "name"}, {Name: "_id", Descending: true}}, ""),
			want:   url.Values{"sort": {`{"name":1,"_id":-1}`}},
		},
		{
			name:   "expand paths",
			params: WithExpandPaths([]string{"creator", "owner"}, "c_list"),
			want:   url.Values{"c_list.expand[]": {"creator", "owner"}},
		},
		{
			name:   "limit and skip",
			params: Combine(WithLimit(25, ""), WithSkip(50, "")),
			want:   url.Values{"limit": {"25"}, "skip": {"50"}},
		},
		{
			name:   "pipeline stages",
			params: WithPipelineStages([]map[string]any{{"$match": map[string]any{"state": "active"}}}, ""),
			want:   url.Values{"pipeline": {`[{"$match":{"state":"active"}}]`}},
		},
		{
			name:   "or conditions",
			params: WithOrConditions([]map[string]any{{"a": 1}, {"b": 2}}, ""),
			want:   url.Values{"where": {`{"$or":[{"a":1},{"b":2}]}`}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.Encode()
			if got.Encode() != tt.want.Encode() {
				t.Errorf("Encode() = %q, want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func TestLimitClamped(t *testing.T) {
	if got := WithLimit(0, "").Encode().Get("limit"); got != "1" {
		t.Errorf("limit 0 clamped to %s, want 1", got)
	}
	if got := WithLimit(500, "").Encode().Get("limit"); got != "100" {
		t.Errorf("limit 500 clamped to %s, want 100", got)
	}
}

func TestCompositionAssociative(t *testing.T) {
	a := WhereGreaterThan("age", 21, "")
	b := WhereRegex("name", "^Jo", "")
	c := WithLimit(10, "")

	left := Combine(Combine(a, b), c).Encode().Encode()
	right := Combine(a, Combine(b, c)).Encode().Encode()
	flat := Combine(a, b, c).Encode().Encode()

	if left != right || left != flat {
		t.Errorf("composition not associative:\n left=%s\nright=%s\n flat=%s", left, right, flat)
	}
}

func TestRepeatedWheresAreANDed(t *testing.T) {
	p := Combine(
		WhereGreaterThan("age", 21, ""),
		WhereLessThan("age", 65, ""),
	)
	want := `{"$and":[{"age":{"$gt":21}},{"age":{"$lt":65}}]}`
	if got := p.Encode().Get("where"); got != want {
		t.Errorf("merged where = %s, want %s", got, want)
	}
}

func TestAndConditionsSpliceOnMerge(t *testing.T) {
	p := Combine(
		WithAndConditions([]map[string]any{{"a": 1}, {"b": 2}}, ""),
		WhereGreaterThan("c", 3, ""),
	)
	want := `{"$and":[{"a":1},{"b":2},{"c":{"$gt":3}}]}`
	if got := p.Encode().Get("where"); got != want {
		t.Errorf("merged where = %s, want %s", got, want)
	}
}

func TestPrefixesKeptSeparate(t *testing.T) {
	p := Combine(
		WhereGreaterThan("_id", "x", ""),
		WhereGreaterThan("_id", "y", "c_notes"),
	)
	v := p.Encode()
	if v.Get("where") == "" || v.Get("c_notes.where") == "" {
		t.Errorf("expected both prefixed and unprefixed where, got %v", v)
	}
	if v.Get("where") == v.Get("c_notes.where") {
		t.Error("prefixed and unprefixed where collapsed")
	}
}

func TestNonWhereDuplicatesLastWins(t *testing.T) {
	p := Combine(WithLimit(10, ""), WithLimit(20, ""))
	if got := p.Encode().Get("limit"); got != "20" {
		t.Errorf("limit = %s, want 20 (last wins)", got)
	}
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	a := WithLimit(10, "")
	before := a.String()
	_ = a.Add(WithSkip(5, ""))
	if a.String() != before {
		t.Error("Add mutated the receiver")
	}
}

func TestNilAndEmpty(t *testing.T) {
	var p *Parameters
	if !p.IsEmpty() {
		t.Error("nil parameters should be empty")
	}
	if got := p.Encode().Encode(); got != "" {
		t.Errorf("nil Encode = %q, want empty", got)
	}
	if got := Combine(nil, WithSkip(1, "")).Encode().Get("skip"); got != "1" {
		t.Errorf("combine with nil = %q, want 1", got)
	}
}
