package schema

// FacetDefinition is the definition counterpart to a File property's facet:
// one named physical variant of the file (original, thumbnail, and so on).
type FacetDefinition struct {
	ID          string
	Name        string
	Label       string
	Type        string
	Mimes       []string
	Location    int
	Source      string
	AllowUpload bool
	IsDefault   bool
	PassMimes   bool
	Private     bool
	Required    bool
}

// SupportsMime reports whether the facet accepts the given mime type. An
// empty mime list accepts everything.
func (f *FacetDefinition) SupportsMime(mime string) bool {
	if len(f.Mimes) == 0 {
		return true
	}
	for _, m := range f.Mimes {
		if m == mime || m == "*/*" {
			return true
		}
	}
	return false
}

// FacetFromAttributes builds a facet definition from raw schema attributes.
func FacetFromAttributes(attrs map[string]any) *FacetDefinition {
	f := &FacetDefinition{}
	f.ID, _ = attrs["_id"].(string)
	f.Name, _ = attrs["name"].(string)
	f.Label, _ = attrs["label"].(string)
	f.Type, _ = attrs["type"].(string)
	if raw, ok := attrs["mimes"].([]any); ok {
		for _, m := range raw {
			if s, ok := m.(string); ok {
				f.Mimes = append(f.Mimes, s)
			}
		}
	}
	if v, ok := attrs["location"].(float64); ok {
		f.Location = int(v)
	}
	f.Source, _ = attrs["source"].(string)
	f.AllowUpload = boolAttr(attrs, "allowUpload")
	f.IsDefault = boolAttr(attrs, "isDefault")
	f.PassMimes = boolAttr(attrs, "passMimes")
	f.Private = boolAttr(attrs, "private")
	f.Required = boolAttr(attrs, "required")
	return f
}

// FacetsFromAttributes builds an ordered facet list from raw attributes.
func FacetsFromAttributes(attrs []any) []*FacetDefinition {
	if len(attrs) == 0 {
		return nil
	}
	facets := make([]*FacetDefinition, 0, len(attrs))
	for _, a := range attrs {
		if m, ok := a.(map[string]any); ok {
			facets = append(facets, FacetFromAttributes(m))
		}
	}
	return facets
}
