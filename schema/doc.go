// Package schema models the server-declared shape of an org's objects:
// property definitions, object definitions, and the registry that caches
// them per org.
//
// Definitions are built once from raw schema payloads and never mutated.
// Lookups pervasively return a (value, ok) pair instead of an error;
// schemas are dynamic and a missing name is an expected outcome. Type
// strings the client has never seen decode as TypeUnknown so newer server
// schemas do not break older clients.
package schema
