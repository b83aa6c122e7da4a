// Package query builds the structured filter, sort, projection and
// pagination fragments the backend accepts on list requests, and
// serializes them into its query-string dialect.
//
// Fragments are immutable values created through factory functions and
// combined in order:
//
//	params := query.Combine(
//		query.WhereGreaterThan("age", 21, ""),
//		query.WithOrderedSort([]query.SortField{{Name: "_id"}}, ""),
//		query.WithLimit(25, ""),
//	)
//
// Each fragment serializes as <prefix>.<operator>=<value>, un-prefixed when
// no prefix path is given. Repeated where fragments under the same prefix
// are ANDed together; other repeated operators are last-wins. Everything in
// this package is pure data transformation; only Encode and Apply touch the
// request representation.
package query
