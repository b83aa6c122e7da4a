// Package feed lists posts, comments and connections for context
// objects.
//
// Deprecated: retained for orgs still using the legacy collaboration
// feed. New applications should model collaboration with custom objects
// and the paging package.
package feed
