package query

// Comparison and combinator operator keys. These names are a compatibility
// contract with the backend and are reproduced exactly.
const (
	OpGreaterThan    = "$gt"
	OpGreaterOrEqual = "$gte"
	OpLessThan       = "$lt"
	OpLessOrEqual    = "$lte"
	OpIn             = "$in"
	OpAll            = "$all"
	OpRegex          = "$regex"
	OpSize           = "$size"
	OpElemMatch      = "$elemMatch"
	OpAnd            = "$and"
	OpOr             = "$or"
)

func whereOperator(property, op string, value any, prefixPath string) *Parameters {
	return WithWhere(map[string]any{property: map[string]any{op: value}}, prefixPath)
}

// WhereGreaterThan selects objects where the property value is greater
// than the given value. Produces <prefix>.where={"property":{"$gt":value}}.
func WhereGreaterThan(property string, value any, prefixPath string) *Parameters {
	return whereOperator(property, OpGreaterThan, value, prefixPath)
}

// WhereGreaterOrEqual selects objects where the property value is greater
// than or equal to the given value.
func WhereGreaterOrEqual(property string, value any, prefixPath string) *Parameters {
	return whereOperator(property, OpGreaterOrEqual, value, prefixPath)
}

// WhereLessThan selects objects where the property value is less than the
// given value. Produces <prefix>.where={"property":{"$lt":value}}.
func WhereLessThan(property string, value any, prefixPath string) *Parameters {
	return whereOperator(property, OpLessThan, value, prefixPath)
}

// WhereLessOrEqual selects objects where the property value is less than
// or equal to the given value.
func WhereLessOrEqual(property string, value any, prefixPath string) *Parameters {
	return whereOperator(property, OpLessOrEqual, value, prefixPath)
}

// WhereIn selects objects where the property matches any of the values.
func WhereIn(property string, values []any, prefixPath string) *Parameters {
	return whereOperator(property, OpIn, values, prefixPath)
}

// WhereAll selects objects where the array property contains all of the
// values.
func WhereAll(property string, values []any, prefixPath string) *Parameters {
	return whereOperator(property, OpAll, values, prefixPath)
}

// WhereRegex selects objects where the string property matches the regular
// expression.
func WhereRegex(property, regex string, prefixPath string) *Parameters {
	return whereOperator(property, OpRegex, regex, prefixPath)
}

// WhereSize selects objects where the size of the array property matches.
func WhereSize(property string, size int, prefixPath string) *Parameters {
	return whereOperator(property, OpSize, size, prefixPath)
}

// WhereElemMatch selects objects where an entry of the document array
// property matches the expression. $elemMatch does not limit the results
// within the array; it filters the containing objects.
func WhereElemMatch(property string, match map[string]any, prefixPath string) *Parameters {
	return whereOperator(property, OpElemMatch, match, prefixPath)
}

// WithAndConditions selects objects where all conditions are met.
// Produces <prefix>.where={"$and":[...]}.
func WithAndConditions(conditions []map[string]any, prefixPath string) *Parameters {
	return WithWhere(map[string]any{OpAnd: anySlice(conditions)}, prefixPath)
}

// WithOrConditions selects objects where any condition is met.
// Produces <prefix>.where={"$or":[...]}.
func WithOrConditions(conditions []map[string]any, prefixPath string) *Parameters {
	return WithWhere(map[string]any{OpOr: anySlice(conditions)}, prefixPath)
}

func anySlice(conds []map[string]any) []any {
	out := make([]any, len(conds))
	for i, c := range conds {
		out[i] = c
	}
	return out
}
