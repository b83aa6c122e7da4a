package schema

import (
	"strings"

	"github.com/orgbase/orgcore/acl"
	"github.com/orgbase/orgcore/util"
)

// customPrefix marks org-defined custom objects and properties.
const customPrefix = "c_"

// ObjectDefinition holds all model information regarding one class of
// objects, as obtained via the schema Registry. See Instance for model
// information about a concrete object.
//
// The principal fields are the names (singular and plural), the id, and the
// property definitions declared for instances of this class.
type ObjectDefinition struct {
	ID    string
	Name  string
	Label string

	// PluralName is the name used in API routes. To retrieve a list of
	// c_thing objects, use "GET /c_things". Derived from Name unless the
	// server payload supplies one.
	PluralName string

	// Lookup disambiguates built-in contexts, which share the same id
	// across orgs.
	Lookup string

	Description string

	// DefaultACL is merged with every instance's own acl.
	DefaultACL []*acl.Entry
	// CreateACL lists the targets able to create instances of this class.
	CreateACL []*acl.Entry
	// ShareACL lists the targets able to share instances of this class.
	ShareACL []*acl.Entry

	// ShareChain lists the access levels a caller can grant when creating
	// connections, each less than their own.
	ShareChain []acl.Level

	ConnectionOptions map[string]any

	AllowTransfers   bool
	HasETag          bool
	AllowConnections bool
	IsExtensible     bool
	IsExtended       bool
	IsCustom         bool

	BaseProperties   []*PropertyDefinition
	CustomProperties []*PropertyDefinition

	// SubclassProperties maps subclass type names to the extra property
	// definitions instances of that subclass carry.
	SubclassProperties map[string][]*PropertyDefinition

	byName         map[string]*PropertyDefinition
	subclassByName map[string]map[string]*PropertyDefinition
}

// Property returns the definition for a property of the given name. When
// subclassType is non-empty the subclass property list is searched ahead of
// the shared properties. A missing property reports absence, never an
// error; instance accessors rely on this maybe-style lookup.
func (d *ObjectDefinition) Property(name, subclassType string) (*PropertyDefinition, bool) {
	if d == nil {
		return nil, false
	}
	if subclassType != "" {
		if sub, ok := d.subclassByName[subclassType]; ok {
			if p, ok := sub[name]; ok {
				return p, true
			}
		}
	}
	p, ok := d.byName[name]
	return p, ok
}

// HasProperty checks property membership under an optional subclass type.
func (d *ObjectDefinition) HasProperty(name, subclassType string) bool {
	_, ok := d.Property(name, subclassType)
	return ok
}

// DefinitionFromAttributes builds an object definition from a full schema
// payload entry.
func DefinitionFromAttributes(attrs map[string]any) *ObjectDefinition {
	d := &ObjectDefinition{}
	d.ID, _ = attrs["_id"].(string)
	d.Name, _ = attrs["name"].(string)
	d.Label, _ = attrs["label"].(string)
	d.Lookup, _ = attrs["lookup"].(string)
	d.Description, _ = attrs["description"].(string)

	if v, ok := attrs["pluralName"].(string); ok && v != "" {
		d.PluralName = v
	} else {
		d.PluralName = util.PluralName(d.Name)
	}

	if raw, ok := attrs["defaultAcl"].([]any); ok {
		d.DefaultACL = acl.EntriesFromAttributes(raw)
	}
	if raw, ok := attrs["createAcl"].([]any); ok {
		d.CreateACL = acl.EntriesFromAttributes(raw)
	}
	if raw, ok := attrs["shareAcl"].([]any); ok {
		d.ShareACL = acl.EntriesFromAttributes(raw)
	}
	if raw, ok := attrs["shareChain"].([]any); ok {
		for _, l := range raw {
			if n, ok := l.(float64); ok {
				d.ShareChain = append(d.ShareChain, acl.LevelFromNumber(int(n)))
			}
		}
	}
	d.ConnectionOptions, _ = attrs["connectionOptions"].(map[string]any)

	d.AllowTransfers = boolAttr(attrs, "allowTransfers")
	d.HasETag = boolAttr(attrs, "hasETag")
	d.AllowConnections = boolAttr(attrs, "allowConnections")
	d.IsExtensible = boolAttr(attrs, "isExtensible")
	d.IsExtended = boolAttr(attrs, "isExtended")
	if v, ok := attrs["isCustom"].(bool); ok {
		d.IsCustom = v
	} else {
		d.IsCustom = strings.HasPrefix(d.Name, customPrefix)
	}

	d.byName = make(map[string]*PropertyDefinition)
	if raw, ok := attrs["properties"].([]any); ok {
		for _, p := range PropertiesFromAttributes(raw, nil) {
			p.Owner = d
			if strings.HasPrefix(p.Name, customPrefix) {
				d.CustomProperties = append(d.CustomProperties, p)
			} else {
				d.BaseProperties = append(d.BaseProperties, p)
			}
			d.byName[p.Name] = p
		}
	}

	if raw, ok := attrs["objectTypes"].([]any); ok {
		d.SubclassProperties = make(map[string][]*PropertyDefinition)
		d.subclassByName = make(map[string]map[string]*PropertyDefinition)
		for _, ot := range raw {
			m, ok := ot.(map[string]any)
			if !ok {
				continue
			}
			typeName, _ := m["name"].(string)
			if typeName == "" {
				continue
			}
			props, _ := m["properties"].([]any)
			list := PropertiesFromAttributes(props, nil)
			index := make(map[string]*PropertyDefinition, len(list))
			for _, p := range list {
				p.Owner = d
				index[p.Name] = p
			}
			d.SubclassProperties[typeName] = list
			d.subclassByName[typeName] = index
		}
	}
	return d
}
