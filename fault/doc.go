// Package fault defines the standard error value delivered through SDK
// callbacks.
//
// Backend faults are decoded from the response envelope and propagated
// opaquely, carrying code, message, path and any nested subfaults so the
// caller can branch on them. Local SDK failures use the k-prefixed codes
// defined here.
package fault
