// Package transport moves query parameters and target descriptors to the
// backend and raw attribute pages back.
//
// The Fetcher interface is the seam the rest of the SDK depends on; Client
// is its HTTP implementation, handling org scoping, auth headers, the
// response envelope, circuit breaking, and optional ETag response caching.
// Tests substitute a FetcherFunc.
package transport
