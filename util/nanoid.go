package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet string = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	length   int    = 22
)

// DefaultNanoID generates a NanoID with the default alphabet.
func DefaultNanoID(l ...int) string {
	return gonanoid.Must(l...)
}

// NanoString generates an alphanumeric NanoID of the given length.
func NanoString(len int) string {
	return gonanoid.MustGenerate(alphabet, len)
}

// NanoID generates an alphanumeric NanoID of the default length.
func NanoID() string {
	return gonanoid.MustGenerate(alphabet, length)
}
