package launcher

import (
	"fmt"
	"strings"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/index"
)

// IntentKind says why the app drawer is open.
type IntentKind int

const (
	// IntentLaunch launches the selected app.
	IntentLaunch IntentKind = iota
	// IntentHiddenApps lists hidden apps; selecting one launches it.
	IntentHiddenApps
	// IntentSlot assigns the selected app to Intent.Slot().
	IntentSlot
)

// Intent is the purpose of a drawer session.
type Intent struct {
	kind IntentKind
	slot apps.Slot
}

// LaunchIntent selects apps to launch them.
func LaunchIntent() Intent { return Intent{kind: IntentLaunch} }

// HiddenAppsIntent browses the hidden apps.
func HiddenAppsIntent() Intent { return Intent{kind: IntentHiddenApps} }

// SlotIntent picks an app for slot.
func SlotIntent(slot apps.Slot) Intent { return Intent{kind: IntentSlot, slot: slot} }

// Kind returns the intent kind.
func (i Intent) Kind() IntentKind { return i.kind }

// Slot returns the target slot of an IntentSlot, or "".
func (i Intent) Slot() apps.Slot { return i.slot }

func (i Intent) String() string {
	switch i.kind {
	case IntentLaunch:
		return "launch"
	case IntentHiddenApps:
		return "hidden"
	case IntentSlot:
		return "slot:" + string(i.slot)
	}
	return fmt.Sprintf("Intent(%d)", int(i.kind))
}

// ParseIntent parses "launch", "hidden" or "slot:<slot>".
func ParseIntent(s string) (Intent, error) {
	switch s {
	case "", "launch":
		return LaunchIntent(), nil
	case "hidden":
		return HiddenAppsIntent(), nil
	}
	if rest, ok := strings.CutPrefix(s, "slot:"); ok {
		slot, err := apps.ParseSlot(rest)
		if err != nil {
			return Intent{}, err
		}
		return SlotIntent(slot), nil
	}
	return Intent{}, fmt.Errorf("unknown intent %q", s)
}

// mode picks the listing an intent browses. Home slot pickers include
// hidden apps so a hidden app can still be placed on the home screen.
func (i Intent) mode() index.Mode {
	switch {
	case i.kind == IntentHiddenApps:
		return index.ModeHiddenOnly
	case i.kind == IntentSlot && i.slot.IsHome():
		return index.ModeIncludeHidden
	}
	return index.ModeDefault
}
