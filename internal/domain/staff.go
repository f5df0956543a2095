package domain

import "strings"

// Staff is a bookable resource
type Staff struct {
	ID        int64
	Name      string
	AvatarURL *string
}

// Legacy datasets encoded "no preference" as a staff row with a sentinel
// name. The directory excludes such rows from every resource count; the
// preference itself travels as a StaffSelector.
var sentinelNames = map[string]struct{}{
	"any":        {},
	"cualquiera": {},
}

// IsSentinel returns true if the row is the legacy "no preference" marker
// rather than a real resource
func (s *Staff) IsSentinel() bool {
	_, ok := sentinelNames[strings.ToLower(strings.TrimSpace(s.Name))]
	return ok
}

// StaffSelector is the caller's staff preference: either a specific staff
// member or no preference at all. The zero value means "no preference".
type StaffSelector struct {
	id        int64
	specified bool
}

// AnyStaff returns a selector meaning "no preference"
func AnyStaff() StaffSelector {
	return StaffSelector{}
}

// SpecificStaff returns a selector for one staff member
func SpecificStaff(id int64) StaffSelector {
	return StaffSelector{id: id, specified: true}
}

// IsAny returns true if the caller has no staff preference
func (s StaffSelector) IsAny() bool {
	return !s.specified
}

// StaffID returns the selected staff id; ok is false for "no preference"
func (s StaffSelector) StaffID() (id int64, ok bool) {
	return s.id, s.specified
}
