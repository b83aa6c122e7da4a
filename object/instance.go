package object

import (
	"context"
	"strings"
	"time"

	"github.com/orgbase/orgcore/acl"
	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/query"
	"github.com/orgbase/orgcore/schema"
	"github.com/orgbase/orgcore/transport"
)

// customPrefix marks org-defined custom properties.
const customPrefix = "c_"

// Instance attribute keys that are not property values.
var reservedAttrs = map[string]bool{
	"_id": true, "object": true, "type": true, "acl": true,
	"creator": true, "owner": true, "updater": true,
	"created": true, "updated": true, "ETag": true,
	"access": true, "accessRoles": true, "shared": true, "favorite": true,
}

// PropertyInstance binds a concrete value to its property definition. It
// is immutable; resynchronization replaces it rather than mutating it.
type PropertyInstance struct {
	Definition *schema.PropertyDefinition
	Value      Value
}

// Instance is a concrete object of a given class, following the form its
// ObjectDefinition declares. It is never partially constructed: when the
// backing definition cannot be resolved, construction fails as a whole.
type Instance struct {
	ID           ID
	Definition   *schema.ObjectDefinition
	SubclassType string

	Creator *Reference
	Owner   *Reference
	Updater *Reference

	Created time.Time
	Updated time.Time
	ETag    string

	// Access is the caller's effective level on this instance.
	Access      acl.Level
	AccessRoles []ID
	Shared      bool
	Favorite    bool

	base   map[string]*PropertyInstance
	custom map[string]*PropertyInstance

	reg *schema.Registry
}

// decoder carries the schema registry through value decoding so expanded
// references can resolve their own definitions.
type decoder struct {
	reg *schema.Registry
}

// NewInstance builds an instance from a raw attribute mapping as decoded
// from the wire, resolving the object definition by the payload's object
// name. It fails atomically when the definition cannot be resolved; an
// instance with no backing definition cannot answer any typed query.
func NewInstance(attrs map[string]any, reg *schema.Registry) (*Instance, *fault.Fault) {
	d := &decoder{reg: reg}
	return d.newInstance(attrs)
}

// NewInstances builds a list of instances from raw attribute mappings.
// Any single failure fails the whole conversion.
func NewInstances(items []map[string]any, reg *schema.Registry) ([]*Instance, *fault.Fault) {
	out := make([]*Instance, 0, len(items))
	for _, attrs := range items {
		inst, flt := NewInstance(attrs, reg)
		if flt != nil {
			return nil, flt
		}
		out = append(out, inst)
	}
	return out, nil
}

// NewInstanceWithDefinition builds an instance against an already resolved
// definition.
func NewInstanceWithDefinition(attrs map[string]any, def *schema.ObjectDefinition, reg *schema.Registry) *Instance {
	d := &decoder{reg: reg}
	inst := &Instance{Definition: def, reg: reg, Access: acl.LevelNotSet}
	inst.apply(d, attrs)
	return inst
}

func (d *decoder) newInstance(attrs map[string]any) (*Instance, *fault.Fault) {
	name, _ := attrs["object"].(string)
	def, ok := resolve(d.reg, name)
	if !ok {
		return nil, fault.UnresolvedSchema(name)
	}
	inst := &Instance{Definition: def, reg: d.reg, Access: acl.LevelNotSet}
	inst.apply(d, attrs)
	return inst, nil
}

func resolve(reg *schema.Registry, name string) (*schema.ObjectDefinition, bool) {
	if reg == nil || name == "" {
		return nil, false
	}
	return reg.ObjectByName(name)
}

// apply replaces the instance's scalar attributes and property maps from a
// raw attribute mapping. Replacement is wholesale; no partial merges.
func (i *Instance) apply(d *decoder, attrs map[string]any) {
	if s, ok := attrs["_id"].(string); ok {
		i.ID, _ = ParseID(s)
	}
	i.SubclassType, _ = attrs["type"].(string)
	i.Creator = refAttr(d, attrs, "creator")
	i.Owner = refAttr(d, attrs, "owner")
	i.Updater = refAttr(d, attrs, "updater")
	i.Created = timeAttr(attrs, "created")
	i.Updated = timeAttr(attrs, "updated")
	i.ETag, _ = attrs["ETag"].(string)
	if n, ok := attrs["access"].(float64); ok {
		i.Access = acl.LevelFromNumber(int(n))
	}
	i.AccessRoles = nil
	if roles, ok := attrs["accessRoles"].([]any); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok {
				if id, ok := ParseID(s); ok {
					i.AccessRoles = append(i.AccessRoles, id)
				}
			}
		}
	}
	i.Shared, _ = attrs["shared"].(bool)
	i.Favorite, _ = attrs["favorite"].(bool)

	base := map[string]*PropertyInstance{}
	custom := map[string]*PropertyInstance{}
	for key, raw := range attrs {
		if reservedAttrs[key] {
			continue
		}
		def, ok := i.Definition.Property(key, i.SubclassType)
		if !ok {
			continue
		}
		pi := &PropertyInstance{Definition: def, Value: d.decodeValue(def, raw)}
		if strings.HasPrefix(key, customPrefix) {
			custom[key] = pi
		} else {
			base[key] = pi
		}
	}
	i.base = base
	i.custom = custom
}

// Property returns the property instance with the given name, base or
// custom. Reports absence when the property is not set on this instance.
func (i *Instance) Property(name string) (*PropertyInstance, bool) {
	if strings.HasPrefix(name, customPrefix) {
		p, ok := i.custom[name]
		return p, ok
	}
	p, ok := i.base[name]
	return p, ok
}

// BaseProperties returns the base property instances keyed by name.
func (i *Instance) BaseProperties() map[string]*PropertyInstance { return i.base }

// CustomProperties returns the custom property instances keyed by name.
// Custom property names carry the c_ prefix.
func (i *Instance) CustomProperties() map[string]*PropertyInstance { return i.custom }

// Value returns the raw tagged value for a property name. Reports absence
// when no such property is set.
func (i *Instance) Value(name string) (Value, bool) {
	p, ok := i.Property(name)
	if !ok {
		return Value{}, false
	}
	return p.Value, true
}

// ValueAtPath resolves a dot-separated path through nested Document
// properties, e.g. "c_address.c_city". Every intermediate segment must be
// a Document; a path that crosses a non-Document property reports absence
// instead of descending into a wrong value.
func (i *Instance) ValueAtPath(path string) (Value, bool) {
	return i.ValueAtPathComponents(strings.Split(path, "."))
}

// ValueAtPathComponents is ValueAtPath with the path already split.
func (i *Instance) ValueAtPathComponents(components []string) (Value, bool) {
	if len(components) == 0 {
		return Value{}, false
	}
	p, ok := i.Property(components[0])
	if !ok {
		return Value{}, false
	}
	value := p.Value
	for _, name := range components[1:] {
		doc, ok := value.Document()
		if !ok {
			return Value{}, false
		}
		value, ok = doc[name]
		if !ok {
			return Value{}, false
		}
	}
	return value, true
}

// TypeOf returns the declared type of the named property, or TypeUnknown
// when the definition has no such property. Callers can branch on the
// result without a prior existence check.
func (i *Instance) TypeOf(name string) schema.PropertyType {
	def, ok := i.Definition.Property(name, i.SubclassType)
	if !ok {
		return schema.TypeUnknown
	}
	return def.Type
}

// typed looks up a property and checks its declared type. Mismatches are
// recoverable no-value conditions, never errors.
func (i *Instance) typed(name string, t schema.PropertyType) (Value, bool) {
	p, ok := i.Property(name)
	if !ok || p.Definition.Type != t {
		return Value{}, false
	}
	return p.Value, true
}

// BoolValue returns the value of a Boolean property.
func (i *Instance) BoolValue(name string) (bool, bool) {
	v, ok := i.typed(name, schema.TypeBoolean)
	if !ok {
		return false, false
	}
	return v.Bool()
}

// NumberValue returns the value of a Number property.
func (i *Instance) NumberValue(name string) (float64, bool) {
	v, ok := i.typed(name, schema.TypeNumber)
	if !ok {
		return 0, false
	}
	return v.Number()
}

// StringValue returns the value of a String property.
func (i *Instance) StringValue(name string) (string, bool) {
	v, ok := i.typed(name, schema.TypeString)
	if !ok {
		return "", false
	}
	return v.Str()
}

// DateValue returns the value of a Date property.
func (i *Instance) DateValue(name string) (time.Time, bool) {
	v, ok := i.typed(name, schema.TypeDate)
	if !ok {
		return time.Time{}, false
	}
	return v.Date()
}

// AnyValue returns the value of an Any property.
func (i *Instance) AnyValue(name string) (map[string]any, bool) {
	v, ok := i.typed(name, schema.TypeAny)
	if !ok {
		return nil, false
	}
	return v.Any()
}

// DocumentValue returns the value of a Document property.
func (i *Instance) DocumentValue(name string) (map[string]Value, bool) {
	v, ok := i.typed(name, schema.TypeDocument)
	if !ok {
		return nil, false
	}
	return v.Document()
}

// FileValue returns the value of a File property.
func (i *Instance) FileValue(name string) (*FileValue, bool) {
	v, ok := i.typed(name, schema.TypeFile)
	if !ok {
		return nil, false
	}
	return v.File()
}

// ObjectIDValue returns the value of an ObjectId property.
func (i *Instance) ObjectIDValue(name string) (ID, bool) {
	v, ok := i.typed(name, schema.TypeObjectID)
	if !ok {
		return NilID, false
	}
	return v.ObjectID()
}

// ReferenceValue returns the value of a Reference property.
func (i *Instance) ReferenceValue(name string) (*Reference, bool) {
	v, ok := i.typed(name, schema.TypeReference)
	if !ok {
		return nil, false
	}
	return v.Reference()
}

// ArrayValue returns the elements of an array property of any type.
func (i *Instance) ArrayValue(name string) ([]Value, bool) {
	p, ok := i.Property(name)
	if !ok {
		return nil, false
	}
	return p.Value.Array()
}

// SyncCallback receives the refreshed instance, or a fault.
type SyncCallback func(inst *Instance, flt *fault.Fault)

// Synchronize refetches the instance and replaces its property maps and
// scalar attributes wholesale with the latest backend state. Local edits
// are not merged; callers preserving unsaved changes must re-apply them.
//
// Replacement happens on the fetch goroutine before the callback fires.
// The instance is not internally locked: read it from the callback (or
// after the callback has completed), not concurrently with an in-flight
// Synchronize.
func (i *Instance) Synchronize(ctx context.Context, fetcher transport.Fetcher, params *query.Parameters, cb SyncCallback) {
	target := transport.Target{
		Context:  i.Definition.PluralName,
		ObjectID: i.ID.String(),
	}
	go func() {
		page, err := fetcher.Fetch(ctx, target, params)
		if err != nil {
			if cb != nil {
				cb(nil, fault.FromError(err))
			}
			return
		}
		if len(page.Items) == 0 {
			if cb != nil {
				cb(nil, fault.New(fault.CodeInvalidResponse, "empty response for object fetch"))
			}
			return
		}
		i.apply(&decoder{reg: i.reg}, page.Items[0])
		if cb != nil {
			cb(i, nil)
		}
	}()
}
