package object

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is the unique identifier of any backend object. Identifiers are
// Mongo-style object ids: 12 bytes, hex encoded on the wire.
type ID primitive.ObjectID

// NilID is the zero, invalid identifier.
var NilID ID

// ParseID converts the hex string representation to an ID. Reports false
// for anything that is not a well-formed object id.
func ParseID(s string) (ID, bool) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilID, false
	}
	return ID(oid), true
}

// String returns the hex representation.
func (id ID) String() string {
	return primitive.ObjectID(id).Hex()
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return primitive.ObjectID(id).IsZero()
}

// Timestamp extracts the creation time embedded in the id.
func (id ID) Timestamp() time.Time {
	return primitive.ObjectID(id).Timestamp()
}

// MarshalJSON encodes the id as its hex string.
func (id ID) MarshalJSON() ([]byte, error) {
	return primitive.ObjectID(id).MarshalJSON()
}

// UnmarshalJSON decodes the id from its hex string.
func (id *ID) UnmarshalJSON(b []byte) error {
	return (*primitive.ObjectID)(id).UnmarshalJSON(b)
}
