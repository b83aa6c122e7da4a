package acl

// Level is an ordered access tier gating property and operation visibility.
// Levels form a total order: Public < Connected < Reserved < Read < Share <
// Update < Delete < Script. NotSet is a sentinel that never satisfies any
// set requirement.
type Level int

const (
	LevelNotSet    Level = -1
	LevelPublic    Level = 1
	LevelConnected Level = 2
	LevelReserved  Level = 3
	LevelRead      Level = 4
	LevelShare     Level = 5
	LevelUpdate    Level = 6
	LevelDelete    Level = 7
	LevelScript    Level = 8
)

// Valid reports whether l is a set access level.
func (l Level) Valid() bool {
	return l > LevelNotSet && l <= LevelScript
}

// Allows reports whether a caller holding level l satisfies the required
// level. A NotSet requirement always passes, a NotSet caller level never
// satisfies a set requirement.
func (l Level) Allows(required Level) bool {
	if required == LevelNotSet {
		return true
	}
	if l == LevelNotSet {
		return false
	}
	return l >= required
}

// String returns the level name used in schema payloads.
func (l Level) String() string {
	switch l {
	case LevelPublic:
		return "public"
	case LevelConnected:
		return "connected"
	case LevelReserved:
		return "reserved"
	case LevelRead:
		return "read"
	case LevelShare:
		return "share"
	case LevelUpdate:
		return "update"
	case LevelDelete:
		return "delete"
	case LevelScript:
		return "script"
	}
	return "notset"
}

// LevelFromNumber converts a numeric value, as received via a network call,
// to an access level. Out of range values map to LevelNotSet.
func LevelFromNumber(n int) Level {
	l := Level(n)
	if !l.Valid() {
		return LevelNotSet
	}
	return l
}

// TargetType identifies what an access entry targets.
type TargetType int

const (
	// TargetAccount targets a specific account by id.
	TargetAccount TargetType = 1
	// TargetSelf applies to the account instance being accessed.
	TargetSelf TargetType = 2
	// TargetRole targets a role by id.
	TargetRole TargetType = 3
	// TargetOwner targets the object instance owner.
	TargetOwner TargetType = 4
	// TargetAccess allows the target to be an access level, overriding the
	// share chain behaviour. Share ACL only.
	TargetAccess TargetType = 5
)

// Entry is a single access control entry matching a target, a target type
// and an access level. When AllowRoleID is set, Allow is LevelNotSet.
type Entry struct {
	ID          string     `json:"_id"`
	Allow       Level      `json:"allow"`
	AllowRoleID string     `json:"allowRoleId,omitempty"`
	Target      string     `json:"target"`
	Type        TargetType `json:"type"`
}

// EntryFromAttributes builds an access entry from a raw attribute mapping.
func EntryFromAttributes(attrs map[string]any) *Entry {
	e := &Entry{Allow: LevelNotSet}
	if v, ok := attrs["_id"].(string); ok {
		e.ID = v
	}
	switch v := attrs["allow"].(type) {
	case float64:
		e.Allow = LevelFromNumber(int(v))
	case int:
		e.Allow = LevelFromNumber(v)
	case string:
		e.AllowRoleID = v
	}
	if v, ok := attrs["target"].(string); ok {
		e.Target = v
	}
	switch v := attrs["type"].(type) {
	case float64:
		e.Type = TargetType(int(v))
	case int:
		e.Type = TargetType(v)
	}
	return e
}

// EntriesFromAttributes builds a list of access entries from raw attributes.
func EntriesFromAttributes(attrs []any) []*Entry {
	if len(attrs) == 0 {
		return nil
	}
	entries := make([]*Entry, 0, len(attrs))
	for _, a := range attrs {
		if m, ok := a.(map[string]any); ok {
			entries = append(entries, EntryFromAttributes(m))
		}
	}
	return entries
}
