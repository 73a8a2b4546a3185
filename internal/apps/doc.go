// Package apps holds the shared data model of the launcher core.
//
// An Entry is one launchable application as seen under one user profile.
// Identity is (Package, Profile): the same package installed in a work
// profile and in the personal profile yields two distinct entries.
//
// Entries are values. An index refresh builds a fresh slice of them and
// replaces the previous one wholesale; nothing mutates an Entry in place.
//
// The package also defines the fixed slot ids of the home layout and the
// error taxonomy shared by every other package (see Error).
package apps
