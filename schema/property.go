package schema

import (
	"strings"

	"github.com/orgbase/orgcore/acl"
)

// PropertyType enumerates the basic property types a schema can declare.
// Except Unknown, Base and Set, all of these can also be declared as array
// types, in which case their wire type strings end with the suffix [].
type PropertyType int

// TypeUnknown marks an uninitialized or unrecognized type. Schemas can
// introduce new types before the client is updated, so unrecognized type
// strings map here instead of failing.
const TypeUnknown PropertyType = -1

const (
	// TypeBase should not be used for instances.
	TypeBase PropertyType = iota + 1
	TypeBoolean
	TypeAny
	TypeDate
	TypeDocument
	TypeFile
	TypeNumber
	TypeObjectID
	TypeReference
	TypeString
	TypeSet
)

var typeNames = map[PropertyType]string{
	TypeBase:      "Base",
	TypeBoolean:   "Boolean",
	TypeAny:       "Any",
	TypeDate:      "Date",
	TypeDocument:  "Document",
	TypeFile:      "File",
	TypeNumber:    "Number",
	TypeObjectID:  "ObjectId",
	TypeReference: "Reference",
	TypeString:    "String",
	TypeSet:       "Set",
}

var typesByName = func() map[string]PropertyType {
	m := make(map[string]PropertyType, len(typeNames))
	for t, n := range typeNames {
		m[n] = t
	}
	return m
}()

// String returns the wire name of the type, or "Unknown".
func (t PropertyType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// ParseType converts a wire type string to a property type and an array
// flag. Unrecognized strings yield TypeUnknown, never an error.
func ParseType(s string) (PropertyType, bool) {
	isArray := strings.HasSuffix(s, "[]")
	if t, ok := typesByName[strings.TrimSuffix(s, "[]")]; ok {
		return t, isArray
	}
	return TypeUnknown, isArray
}

// PropertyDefinition describes how one property of an object class is
// handled: its type, the caller's access to it, and, for Document types,
// its nested sub-properties.
//
// Definitions are built once from server-delivered schema attributes and
// are immutable afterwards.
type PropertyDefinition struct {
	ID         string
	Name       string
	Label      string
	Type       PropertyType
	IsArray    bool
	IsVirtual  bool
	Optional   bool
	Required   bool
	ReadOnly   bool
	Searchable bool
	// DateOnly selects the date-only wire format (yyyy-MM-dd) over the full
	// timestamp format for Date properties.
	DateOnly bool

	CreateAccess acl.Level
	ReadAccess   acl.Level
	UpdateAccess acl.Level
	DeleteAccess acl.Level
	PullAccess   acl.Level
	PushAccess   acl.Level

	ACL          []*acl.Entry
	Dependencies []string
	Validators   []map[string]any

	// Facets lists the facet definitions for File property types.
	Facets []*FacetDefinition

	// Properties lists the sub-property definitions for Document types.
	Properties []*PropertyDefinition

	// Path is the dot-joined chain of names from the root object down to
	// this property.
	Path string

	// Parent points to the enclosing property definition for nested
	// properties, nil at the top level. Navigation only, never ownership.
	Parent *PropertyDefinition

	// Owner points back to the definition this property belongs to.
	Owner *ObjectDefinition

	byName map[string]*PropertyDefinition
}

// SubProperty returns the sub-property definition with the given name.
// Non-Document definitions have no sub-properties, so the lookup reports
// absence instead of failing.
func (p *PropertyDefinition) SubProperty(name string) (*PropertyDefinition, bool) {
	if p == nil || p.Type != TypeDocument {
		return nil, false
	}
	sub, ok := p.byName[name]
	return sub, ok
}

// IsCreatable reports whether a caller with the given access level can
// create this property.
func (p *PropertyDefinition) IsCreatable(access acl.Level) bool {
	return access.Allows(p.CreateAccess)
}

// IsReadable reports whether a caller with the given access level can read
// this property.
func (p *PropertyDefinition) IsReadable(access acl.Level) bool {
	return access.Allows(p.ReadAccess)
}

// IsUpdatable reports whether a caller with the given access level can
// update this property.
func (p *PropertyDefinition) IsUpdatable(access acl.Level) bool {
	return access.Allows(p.UpdateAccess)
}

// IsDeletable reports whether a caller with the given access level can
// delete this property.
func (p *PropertyDefinition) IsDeletable(access acl.Level) bool {
	return access.Allows(p.DeleteAccess)
}

// CanPull reports whether a caller with the given access level can pull
// elements from this array property.
func (p *PropertyDefinition) CanPull(access acl.Level) bool {
	return access.Allows(p.PullAccess)
}

// CanPush reports whether a caller with the given access level can push
// elements onto this array property.
func (p *PropertyDefinition) CanPush(access acl.Level) bool {
	return access.Allows(p.PushAccess)
}

// PropertyFromAttributes builds a property definition from its raw schema
// attributes. The parent is nil for top-level properties.
func PropertyFromAttributes(attrs map[string]any, parent *PropertyDefinition) *PropertyDefinition {
	p := &PropertyDefinition{
		Type:         TypeUnknown,
		CreateAccess: acl.LevelNotSet,
		ReadAccess:   acl.LevelNotSet,
		UpdateAccess: acl.LevelNotSet,
		DeleteAccess: acl.LevelNotSet,
		PullAccess:   acl.LevelNotSet,
		PushAccess:   acl.LevelNotSet,
		Parent:       parent,
	}
	p.ID, _ = attrs["_id"].(string)
	p.Name, _ = attrs["name"].(string)
	p.Label, _ = attrs["label"].(string)
	if ts, ok := attrs["type"].(string); ok {
		p.Type, p.IsArray = ParseType(ts)
	}
	if v, ok := attrs["array"].(bool); ok && v {
		p.IsArray = true
	}
	p.IsVirtual = boolAttr(attrs, "virtual")
	p.Optional = boolAttr(attrs, "optional")
	p.Required = boolAttr(attrs, "required")
	p.ReadOnly = boolAttr(attrs, "readOnly")
	p.Searchable = boolAttr(attrs, "indexed")
	p.DateOnly = boolAttr(attrs, "dateOnly")

	p.CreateAccess = levelAttr(attrs, "createAccess")
	p.ReadAccess = levelAttr(attrs, "readAccess")
	p.UpdateAccess = levelAttr(attrs, "updateAccess")
	p.DeleteAccess = levelAttr(attrs, "deleteAccess")
	p.PullAccess = levelAttr(attrs, "pullAccess")
	p.PushAccess = levelAttr(attrs, "pushAccess")

	if raw, ok := attrs["acl"].([]any); ok {
		p.ACL = acl.EntriesFromAttributes(raw)
	}
	if raw, ok := attrs["dependencies"].([]any); ok {
		for _, d := range raw {
			if s, ok := d.(string); ok {
				p.Dependencies = append(p.Dependencies, s)
			}
		}
	}
	if raw, ok := attrs["validators"].([]any); ok {
		for _, v := range raw {
			if m, ok := v.(map[string]any); ok {
				p.Validators = append(p.Validators, m)
			}
		}
	}
	if raw, ok := attrs["facets"].([]any); ok {
		p.Facets = FacetsFromAttributes(raw)
	}

	if parent != nil {
		p.Path = parent.Path + "." + p.Name
	} else {
		p.Path = p.Name
	}

	// Sub-properties come last so their paths chain off this one.
	if raw, ok := attrs["properties"].([]any); ok && p.Type == TypeDocument {
		p.byName = make(map[string]*PropertyDefinition, len(raw))
		for _, sp := range raw {
			if m, ok := sp.(map[string]any); ok {
				sub := PropertyFromAttributes(m, p)
				p.Properties = append(p.Properties, sub)
				p.byName[sub.Name] = sub
			}
		}
	}
	return p
}

// PropertiesFromAttributes builds an ordered property list from an array of
// raw schema attributes.
func PropertiesFromAttributes(attrs []any, parent *PropertyDefinition) []*PropertyDefinition {
	if len(attrs) == 0 {
		return nil
	}
	props := make([]*PropertyDefinition, 0, len(attrs))
	for _, a := range attrs {
		if m, ok := a.(map[string]any); ok {
			props = append(props, PropertyFromAttributes(m, parent))
		}
	}
	return props
}

func boolAttr(attrs map[string]any, key string) bool {
	v, _ := attrs[key].(bool)
	return v
}

func levelAttr(attrs map[string]any, key string) acl.Level {
	switch v := attrs[key].(type) {
	case float64:
		return acl.LevelFromNumber(int(v))
	case int:
		return acl.LevelFromNumber(v)
	}
	return acl.LevelNotSet
}
