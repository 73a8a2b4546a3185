package funnel

import "fmt"

// State is a funnel position. Values are ordered; the funnel never moves
// to a lower value.
type State int

const (
	StateStart State = iota
	StateWallpaper
	StateReview
	StateRate
	StateShare
)

var stateNames = [...]string{"START", "WALLPAPER", "REVIEW", "RATE", "SHARE"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState parses a stored state name.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return StateStart, false
}

// Dialog is a prompt the caller should display. DialogNone means nothing.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogWallpaper
	DialogReview
	DialogRate
	DialogShare
	DialogNewYear
	DialogNewYear1
	DialogHidden
)

var dialogNames = [...]string{"", "WALLPAPER", "REVIEW", "RATE", "SHARE", "NEW_YEAR", "NEW_YEAR_1", "HIDDEN"}

func (d Dialog) String() string {
	if d >= 0 && int(d) < len(dialogNames) {
		return dialogNames[d]
	}
	return fmt.Sprintf("Dialog(%d)", int(d))
}

// ParseDialog parses a dialog name.
func ParseDialog(name string) (Dialog, bool) {
	for i, n := range dialogNames {
		if i > 0 && n == name {
			return Dialog(i), true
		}
	}
	return DialogNone, false
}
