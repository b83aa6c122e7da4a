// Package acl defines the ordered access levels and access control entries
// used across object definitions and instances.
//
// Access levels are granted per caller and compared against the level a
// definition requires for an operation:
//
//	if prop.IsReadable(instance.Access) {
//		// caller can read this property
//	}
package acl
