// Package paging drives cursor-based pagination over a fetch collaborator.
//
// A Paginator is a small state machine (idle, loading next page, loading
// all pages, destroyed) bound to one target. It builds each request from
// the paging-field cursor, an ordered sort, and the page-size limit,
// merged with any caller-supplied query parameters, and never lets two of
// its own fetches overlap: operations issued while a fetch is in flight
// queue up FIFO and replay when the fetch lands. Results arrive through
// callbacks; a fetch fault leaves the cursor where it was so the same
// page can be retried.
//
// The Manager registers paginators by identifier so an application can
// share them across call sites without constructing duplicates.
package paging
