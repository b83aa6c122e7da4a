package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Result list limits accepted by the backend. Out of range limits are
// clamped rather than rejected.
const (
	MinLimit = 1
	MaxLimit = 100
)

// Fragment operators understood by the backend's query-string dialect.
const (
	opWhere    = "where"
	opSort     = "sort"
	opLimit    = "limit"
	opSkip     = "skip"
	opExpand   = "expand"
	opInclude  = "include"
	opPaths    = "paths"
	opPipeline = "pipeline"
)

type fragment struct {
	prefix string
	op     string
	value  any
}

func (f fragment) key() string {
	if f.prefix == "" {
		return f.op
	}
	return f.prefix + "." + f.op
}

// Parameters is an ordered, immutable collection of query fragments.
// Fragments are created through the factory functions and combined with
// Add or Combine; the zero value and nil are both valid empty sets.
type Parameters struct {
	fragments []fragment
}

func single(prefix, op string, value any) *Parameters {
	return &Parameters{fragments: []fragment{{prefix: prefix, op: op, value: value}}}
}

// Add returns the combination of p followed by the given parameter sets.
// Composition is associative and order-preserving: repeated where fragments
// under one prefix are ANDed together at encoding time, while any other
// repeated operator under one prefix is last-wins.
func (p *Parameters) Add(others ...*Parameters) *Parameters {
	out := &Parameters{}
	if p != nil {
		out.fragments = append(out.fragments, p.fragments...)
	}
	for _, o := range others {
		if o != nil {
			out.fragments = append(out.fragments, o.fragments...)
		}
	}
	return out
}

// Combine merges several parameter sets into one, in argument order.
func Combine(params ...*Parameters) *Parameters {
	return (&Parameters{}).Add(params...)
}

// IsEmpty reports whether no fragments have been added.
func (p *Parameters) IsEmpty() bool {
	return p == nil || len(p.fragments) == 0
}

// WithCustom wraps raw key/value parameters. Values marshal as JSON unless
// they are plain strings or numbers.
func WithCustom(params map[string]any) *Parameters {
	out := &Parameters{}
	for _, k := range sortedKeys(params) {
		out.fragments = append(out.fragments, fragment{op: k, value: params[k]})
	}
	return out
}

// WithWhere filters results. Serializes to <prefix>.where=<json>.
func WithWhere(where map[string]any, prefixPath string) *Parameters {
	return single(prefixPath, opWhere, where)
}

// SortField is one ordered sort entry. Descending sorts serialize as -1.
type SortField struct {
	Name       string
	Descending bool
}

// WithOrderedSort sorts results by the given fields, preserving field
// order. Serializes to <prefix>.sort={"name":1,...}.
func WithOrderedSort(fields []SortField, prefixPath string) *Parameters {
	return single(prefixPath, opSort, sortSpec(fields))
}

// WithLimit caps the number of results. The backend accepts 1 to 100;
// values outside the range are clamped.
func WithLimit(count int, prefixPath string) *Parameters {
	if count < MinLimit {
		count = MinLimit
	} else if count > MaxLimit {
		count = MaxLimit
	}
	return single(prefixPath, opLimit, count)
}

// WithSkip skips the given number of results.
func WithSkip(count int, prefixPath string) *Parameters {
	if count < 0 {
		count = 0
	}
	return single(prefixPath, opSkip, count)
}

// WithExpandPaths expands referenced ids into full objects at the given
// paths. Items are expanded with the caller's access level.
func WithExpandPaths(paths []string, prefixPath string) *Parameters {
	return single(prefixPath, opExpand, append([]string(nil), paths...))
}

// WithIncludePaths includes optional properties at the given paths.
func WithIncludePaths(paths []string, prefixPath string) *Parameters {
	return single(prefixPath, opInclude, append([]string(nil), paths...))
}

// WithLimitPaths limits the result to only the given paths.
func WithLimitPaths(paths []string, prefixPath string) *Parameters {
	return single(prefixPath, opPaths, append([]string(nil), paths...))
}

// WithPipelineStages applies an aggregation pipeline. Stage order is
// preserved. Serializes to <prefix>.pipeline=[{...},...].
func WithPipelineStages(stages []map[string]any, prefixPath string) *Parameters {
	return single(prefixPath, opPipeline, append([]map[string]any(nil), stages...))
}

// Encode serializes the parameters to url.Values in the backend dialect:
// one <prefix>.<operator>=<value> pair per operator, path lists as
// repeated <key>[]=path pairs, and all where fragments under the same
// prefix merged into a single $and filter.
func (p *Parameters) Encode() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	wheres := map[string][]map[string]any{}
	whereOrder := []string{}
	for _, f := range p.fragments {
		if f.op != opWhere {
			continue
		}
		w, ok := f.value.(map[string]any)
		if !ok || len(w) == 0 {
			continue
		}
		k := f.key()
		if _, seen := wheres[k]; !seen {
			whereOrder = append(whereOrder, k)
		}
		wheres[k] = append(wheres[k], w)
	}
	for _, k := range whereOrder {
		values.Set(k, encodeJSON(mergeWheres(wheres[k])))
	}

	for _, f := range p.fragments {
		k := f.key()
		switch f.op {
		case opWhere:
			// merged above
		case opLimit, opSkip:
			values.Set(k, strconv.Itoa(f.value.(int)))
		case opExpand, opInclude, opPaths:
			values.Del(k + "[]")
			for _, path := range f.value.([]string) {
				values.Add(k+"[]", path)
			}
		default:
			switch v := f.value.(type) {
			case string:
				values.Set(k, v)
			case int:
				values.Set(k, strconv.Itoa(v))
			case bool:
				values.Set(k, strconv.FormatBool(v))
			default:
				values.Set(k, encodeJSON(v))
			}
		}
	}
	return values
}

// Apply adds the encoded parameters to an existing value set, overwriting
// keys it defines.
func (p *Parameters) Apply(dst url.Values) {
	for k, vs := range p.Encode() {
		dst.Del(k)
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

// String returns the canonical encoded form, useful for debugging.
func (p *Parameters) String() string {
	return p.Encode().Encode()
}

// mergeWheres ANDs several where filters together. A single filter passes
// through untouched; a filter that is itself {$and: [...]} contributes its
// conditions to the merged list instead of nesting.
func mergeWheres(ws []map[string]any) map[string]any {
	if len(ws) == 1 {
		return ws[0]
	}
	conds := make([]any, 0, len(ws))
	for _, w := range ws {
		if and, ok := w["$and"].([]any); ok && len(w) == 1 {
			conds = append(conds, and...)
			continue
		}
		conds = append(conds, w)
	}
	return map[string]any{"$and": conds}
}

// orderedSort preserves sort field order, which JSON maps cannot.
type orderedSort []SortField

func sortSpec(fields []SortField) orderedSort {
	return orderedSort(append([]SortField(nil), fields...))
}

func (s orderedSort) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		b.Write(name)
		if f.Descending {
			b.WriteString(":-1")
		} else {
			b.WriteString(":1")
		}
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func encodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
