package acl

import "testing"

func TestLevelOrdering(t *testing.T) {
	ordered := []Level{
		LevelPublic, LevelConnected, LevelReserved, LevelRead,
		LevelShare, LevelUpdate, LevelDelete, LevelScript,
	}
	for i, lo := range ordered {
		for j, hi := range ordered {
			got := hi.Allows(lo)
			want := j >= i
			if got != want {
				t.Errorf("%v.Allows(%v) = %v, want %v", hi, lo, got, want)
			}
		}
	}
}

func TestNotSetNeverSatisfiesSetLevels(t *testing.T) {
	for l := LevelPublic; l <= LevelScript; l++ {
		if LevelNotSet.Allows(l) {
			t.Errorf("NotSet.Allows(%v) = true, want false", l)
		}
	}
}

func TestNotSetRequirementAlwaysPasses(t *testing.T) {
	if !LevelNotSet.Allows(LevelNotSet) {
		t.Error("NotSet.Allows(NotSet) = false, want true")
	}
	if !LevelPublic.Allows(LevelNotSet) {
		t.Error("Public.Allows(NotSet) = false, want true")
	}
}

func TestLevelFromNumber(t *testing.T) {
	tests := []struct {
		in   int
		want Level
	}{
		{1, LevelPublic},
		{4, LevelRead},
		{8, LevelScript},
		{0, LevelNotSet},
		{9, LevelNotSet},
		{-1, LevelNotSet},
	}
	for _, tt := range tests {
		if got := LevelFromNumber(tt.in); got != tt.want {
			t.Errorf("LevelFromNumber(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEntryFromAttributes(t *testing.T) {
	e := EntryFromAttributes(map[string]any{
		"_id":    "5f0000000000000000000001",
		"allow":  float64(6),
		"target": "account.owner",
		"type":   float64(4),
	})
	if e.Allow != LevelUpdate {
		t.Errorf("Allow = %v, want %v", e.Allow, LevelUpdate)
	}
	if e.Type != TargetOwner {
		t.Errorf("Type = %v, want %v", e.Type, TargetOwner)
	}

	role := EntryFromAttributes(map[string]any{"allow": "5f0000000000000000000002"})
	if role.Allow != LevelNotSet || role.AllowRoleID == "" {
		t.Errorf("role entry = %+v, want NotSet allow with role id", role)
	}
}
