package object

// Reference names another instance by id and context, optionally carrying
// the full instance inline when the request expanded the path.
type Reference struct {
	ID     ID
	Object string
	Path   string

	// Expanded is the inlined instance, nil when the reference was not
	// expanded or its definition could not be resolved.
	Expanded *Instance

	raw any
}

// IsExpanded reports whether the reference carries the full instance.
func (r *Reference) IsExpanded() bool {
	return r != nil && r.Expanded != nil
}

// Raw returns the undecoded wire value of the reference.
func (r *Reference) Raw() any { return r.raw }

// decodeReference builds a reference from a wire value, which is either a
// bare id string or a mapping with at least an _id. Expansion resolution
// is soft: an expanded payload whose definition cannot be resolved decodes
// as a plain reference.
func (d *decoder) decodeReference(raw any) *Reference {
	switch v := raw.(type) {
	case string:
		id, _ := ParseID(v)
		return &Reference{ID: id, raw: raw}
	case map[string]any:
		r := &Reference{raw: raw}
		if s, ok := v["_id"].(string); ok {
			r.ID, _ = ParseID(s)
		}
		r.Object, _ = v["object"].(string)
		r.Path, _ = v["path"].(string)
		if len(v) > 3 && d.reg != nil {
			if inst, err := d.newInstance(v); err == nil {
				r.Expanded = inst
			}
		}
		return r
	}
	return &Reference{raw: raw}
}
