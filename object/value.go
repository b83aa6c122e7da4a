package object

import (
	"time"

	"github.com/orgbase/orgcore/schema"
)

// Wire formats for Date properties. DateOnly properties use the short form.
const (
	DateFormat     = "2006-01-02T15:04:05.000Z07:00"
	DateOnlyFormat = "2006-01-02"
)

// Value is a tagged property value. The tag mirrors the declared property
// type; accessors check the tag and report absence on mismatch instead of
// panicking, because schemas are server-controlled and can change without
// a client rebuild.
type Value struct {
	kind    schema.PropertyType
	isArray bool
	raw     any
}

// Kind returns the value's type tag.
func (v Value) Kind() schema.PropertyType { return v.kind }

// IsArray reports whether the value holds an array of its kind.
func (v Value) IsArray() bool { return v.isArray }

// IsZero reports whether the value is unset.
func (v Value) IsZero() bool { return v.raw == nil && v.kind == schema.TypeUnknown }

// Raw returns the underlying decoded value without a tag check.
func (v Value) Raw() any { return v.raw }

// Bool unwraps a Boolean value.
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok && v.kind == schema.TypeBoolean
}

// Number unwraps a Number value.
func (v Value) Number() (float64, bool) {
	n, ok := v.raw.(float64)
	return n, ok && v.kind == schema.TypeNumber
}

// Str unwraps a String value.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.kind == schema.TypeString
}

// Date unwraps a Date value.
func (v Value) Date() (time.Time, bool) {
	t, ok := v.raw.(time.Time)
	return t, ok && v.kind == schema.TypeDate
}

// Document unwraps a Document value: its sub-values keyed by property name.
func (v Value) Document() (map[string]Value, bool) {
	m, ok := v.raw.(map[string]Value)
	return m, ok && v.kind == schema.TypeDocument
}

// Any unwraps an Any value: an unrestricted attribute mapping.
func (v Value) Any() (map[string]any, bool) {
	m, ok := v.raw.(map[string]any)
	return m, ok && v.kind == schema.TypeAny
}

// File unwraps a File value.
func (v Value) File() (*FileValue, bool) {
	f, ok := v.raw.(*FileValue)
	return f, ok && v.kind == schema.TypeFile
}

// ObjectID unwraps an ObjectId value.
func (v Value) ObjectID() (ID, bool) {
	id, ok := v.raw.(ID)
	return id, ok && v.kind == schema.TypeObjectID
}

// Reference unwraps a Reference value.
func (v Value) Reference() (*Reference, bool) {
	r, ok := v.raw.(*Reference)
	return r, ok && v.kind == schema.TypeReference
}

// Array unwraps an array value into its elements.
func (v Value) Array() ([]Value, bool) {
	a, ok := v.raw.([]Value)
	return a, ok && v.isArray
}

// FileValue is the value of a File property: its upload state and the
// physical facets available for download.
type FileValue struct {
	State  int
	Path   string
	Facets map[string]*Facet
}

// Facet is one physical variant of a file (original, thumbnail, ...).
type Facet struct {
	Name     string
	Path     string
	URL      string
	Mime     string
	State    int
	Location int
}

// decodeValue converts a raw wire value into a tagged Value, guided by the
// property definition. Shapes that do not match the declared type decode
// with a best effort and fail at the accessor's tag check.
func (d *decoder) decodeValue(def *schema.PropertyDefinition, raw any) Value {
	if raw == nil {
		return Value{}
	}
	if def.IsArray {
		items, ok := raw.([]any)
		if !ok {
			return Value{kind: def.Type, isArray: true, raw: raw}
		}
		vals := make([]Value, 0, len(items))
		for _, item := range items {
			vals = append(vals, d.decodeScalar(def, item))
		}
		return Value{kind: def.Type, isArray: true, raw: vals}
	}
	return d.decodeScalar(def, raw)
}

func (d *decoder) decodeScalar(def *schema.PropertyDefinition, raw any) Value {
	v := Value{kind: def.Type}
	switch def.Type {
	case schema.TypeBoolean, schema.TypeNumber, schema.TypeString, schema.TypeAny:
		v.raw = raw
	case schema.TypeDate:
		if s, ok := raw.(string); ok {
			format := DateFormat
			if def.DateOnly {
				format = DateOnlyFormat
			}
			if t, err := time.Parse(format, s); err == nil {
				v.raw = t
				break
			}
		}
		v.raw = raw
	case schema.TypeObjectID:
		if s, ok := raw.(string); ok {
			if id, ok := ParseID(s); ok {
				v.raw = id
				break
			}
		}
		v.raw = raw
	case schema.TypeReference:
		v.raw = d.decodeReference(raw)
	case schema.TypeDocument:
		if m, ok := raw.(map[string]any); ok {
			doc := make(map[string]Value, len(m))
			for key, val := range m {
				if sub, ok := def.SubProperty(key); ok {
					doc[key] = d.decodeValue(sub, val)
				}
			}
			v.raw = doc
			break
		}
		v.raw = raw
	case schema.TypeFile:
		v.raw = decodeFile(raw)
	default:
		v.raw = raw
	}
	return v
}

func decodeFile(raw any) *FileValue {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	f := &FileValue{Facets: map[string]*Facet{}}
	if s, ok := m["state"].(float64); ok {
		f.State = int(s)
	}
	f.Path, _ = m["path"].(string)
	if facets, ok := m["facets"].([]any); ok {
		for _, fc := range facets {
			fm, ok := fc.(map[string]any)
			if !ok {
				continue
			}
			facet := &Facet{}
			facet.Name, _ = fm["name"].(string)
			facet.Path, _ = fm["path"].(string)
			facet.URL, _ = fm["url"].(string)
			facet.Mime, _ = fm["mime"].(string)
			if s, ok := fm["state"].(float64); ok {
				facet.State = int(s)
			}
			if l, ok := fm["location"].(float64); ok {
				facet.Location = int(l)
			}
			f.Facets[facet.Name] = facet
		}
	}
	return f
}
