package prefs

import (
	"fmt"
	"strconv"

	"github.com/roach88/launchcore/internal/apps"
)

// Flat keys.
const (
	KeyPrefsVersion = "PREFS_VERSION"

	KeyHiddenApps = "HIDDEN_APPS"
	KeyFirstHide  = "FIRST_HIDE"

	KeyUserState         = "USER_STATE"
	KeyFirstOpenTime     = "FIRST_OPEN_TIME"
	KeyWallpaperMsgShown = "WALLPAPER_MSG_SHOWN"
	KeyRateClicked       = "RATE_CLICKED"
	KeyShareShownTime    = "SHARE_SHOWN_TIME"
	KeyShownOnDayOfYear  = "SHOWN_ON_DAY_OF_YEAR"
	KeyShownOnYear       = "SHOWN_ON_YEAR"
	KeyDailyWallpaper    = "DAILY_WALLPAPER"

	KeyHomeAppsNum       = "HOME_APPS_NUM"
	KeySwipeLeftEnabled  = "SWIPE_LEFT_ENABLED"
	KeySwipeRightEnabled = "SWIPE_RIGHT_ENABLED"
	KeySwipeDownAction   = "SWIPE_DOWN_ACTION"
)

// Per-package key prefixes.
const (
	renamePrefix   = "RENAME_"
	categoryPrefix = "CATEGORIES_"
)

// slotKeys names the keys holding one slot's binding. Category is empty
// for slots that cannot hold a category.
type slotKeys struct {
	Name     string
	Package  string
	Profile  string
	Activity string
	Category string
}

func keysFor(slot apps.Slot) (slotKeys, error) {
	if i := slot.HomeIndex(); i > 0 {
		n := strconv.Itoa(i)
		return slotKeys{
			Name:     "APP_NAME_" + n,
			Package:  "APP_PACKAGE_" + n,
			Profile:  "APP_USER_" + n,
			Activity: "APP_ACTIVITY_CLASS_NAME_" + n,
			Category: "APP_CATEGORY_" + n,
		}, nil
	}

	switch slot {
	case apps.SlotSwipeLeft:
		return slotKeys{
			Name:     "APP_NAME_SWIPE_LEFT",
			Package:  "APP_PACKAGE_SWIPE_LEFT",
			Profile:  "APP_USER_SWIPE_LEFT",
			Activity: "APP_ACTIVITY_CLASS_NAME_SWIPE_LEFT",
		}, nil
	case apps.SlotSwipeRight:
		return slotKeys{
			Name:     "APP_NAME_SWIPE_RIGHT",
			Package:  "APP_PACKAGE_SWIPE_RIGHT",
			Profile:  "APP_USER_SWIPE_RIGHT",
			Activity: "APP_ACTIVITY_CLASS_NAME_SWIPE_RIGHT",
		}, nil
	case apps.SlotClock:
		return slotKeys{
			Name:     "CLOCK_APP_NAME",
			Package:  "CLOCK_APP_PACKAGE",
			Profile:  "CLOCK_APP_USER",
			Activity: "CLOCK_APP_CLASS_NAME",
		}, nil
	case apps.SlotCalendar:
		return slotKeys{
			Name:     "CALENDAR_APP_NAME",
			Package:  "CALENDAR_APP_PACKAGE",
			Profile:  "CALENDAR_APP_USER",
			Activity: "CALENDAR_APP_CLASS_NAME",
		}, nil
	}
	return slotKeys{}, fmt.Errorf("unknown slot %q", slot)
}

// RenameKey returns the rename-label key of a package.
func RenameKey(pkg string) string {
	return renamePrefix + pkg
}

// CategoryKey returns the category-set key of a package.
func CategoryKey(pkg string) string {
	return categoryPrefix + pkg
}
