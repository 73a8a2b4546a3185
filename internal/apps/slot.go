package apps

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is a fixed placement in the home layout.
type Slot string

const (
	SlotHome1      Slot = "home-1"
	SlotHome2      Slot = "home-2"
	SlotHome3      Slot = "home-3"
	SlotHome4      Slot = "home-4"
	SlotHome5      Slot = "home-5"
	SlotHome6      Slot = "home-6"
	SlotHome7      Slot = "home-7"
	SlotHome8      Slot = "home-8"
	SlotSwipeLeft  Slot = "swipe-left"
	SlotSwipeRight Slot = "swipe-right"
	SlotClock      Slot = "clock"
	SlotCalendar   Slot = "calendar"
)

// HomeSlotCount is the number of home positions.
const HomeSlotCount = 8

// AllSlots lists every slot in layout order.
var AllSlots = []Slot{
	SlotHome1, SlotHome2, SlotHome3, SlotHome4,
	SlotHome5, SlotHome6, SlotHome7, SlotHome8,
	SlotSwipeLeft, SlotSwipeRight, SlotClock, SlotCalendar,
}

// HomeSlot returns the home slot at 1-based position i.
func HomeSlot(i int) (Slot, error) {
	if i < 1 || i > HomeSlotCount {
		return "", fmt.Errorf("home slot %d out of range 1..%d", i, HomeSlotCount)
	}
	return Slot("home-" + strconv.Itoa(i)), nil
}

// ParseSlot validates a slot id.
func ParseSlot(s string) (Slot, error) {
	for _, slot := range AllSlots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown slot %q", s)
}

// IsHome reports whether the slot is one of the eight home positions.
func (s Slot) IsHome() bool {
	return s.HomeIndex() > 0
}

// HomeIndex returns the 1-based home position, or 0 for other slots.
func (s Slot) HomeIndex() int {
	rest, ok := strings.CutPrefix(string(s), "home-")
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 1 || i > HomeSlotCount {
		return 0
	}
	return i
}
