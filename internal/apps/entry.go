package apps

import "strings"

// Profile is an opaque platform user-profile identifier, kept in the
// string form the platform reports (e.g. "UserHandle{0}").
type Profile string

// AnyProfile matches every profile. It only appears in hidden-set keys
// migrated from the legacy bare-package format.
const AnyProfile Profile = "*"

// Identity is the duplicate-detection key of an Entry.
type Identity struct {
	Package string
	Profile Profile
}

// String renders the identity in the persisted "package|profile" form.
func (id Identity) String() string {
	return id.Package + "|" + string(id.Profile)
}

// ParseIdentity parses the persisted "package|profile" form.
// A value without a separator is a package hidden under every profile.
func ParseIdentity(s string) Identity {
	pkg, profile, found := strings.Cut(s, "|")
	if !found || profile == "" {
		return Identity{Package: pkg, Profile: AnyProfile}
	}
	return Identity{Package: pkg, Profile: Profile(profile)}
}

// Entry is one launchable application under one profile.
type Entry struct {
	Label         string
	Package       string
	ActivityClass string // empty when the platform should pick the activity
	System        bool
	New           bool
	Profile       Profile
}

// Identity returns the (package, profile) key of the entry.
func (e Entry) Identity() Identity {
	return Identity{Package: e.Package, Profile: e.Profile}
}

// IsSentinel reports whether e is the synthetic trailing padding entry.
func (e Entry) IsSentinel() bool {
	return e.Package == "" && e.Label == ""
}

// Sentinel returns the padding entry appended to the default listing.
func Sentinel(profile Profile) Entry {
	return Entry{Profile: profile}
}

// CountReal returns the number of non-sentinel entries.
func CountReal(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if !e.IsSentinel() {
			n++
		}
	}
	return n
}

// FirstReal returns the first non-sentinel entry.
func FirstReal(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if !e.IsSentinel() {
			return e, true
		}
	}
	return Entry{}, false
}
