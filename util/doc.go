// Package util holds small helpers shared across the SDK: identifier
// generation and object-name normalization/pluralization.
package util
