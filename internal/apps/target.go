package apps

// SystemTarget is a platform surface opened in place of an app when a slot
// or gesture has no binding.
type SystemTarget string

const (
	TargetCamera        SystemTarget = "camera"
	TargetDialer        SystemTarget = "dialer"
	TargetAlarm         SystemTarget = "alarm"
	TargetCalendar      SystemTarget = "calendar"
	TargetNotifications SystemTarget = "notifications"
	TargetSearch        SystemTarget = "search"
	TargetLockScreen    SystemTarget = "lock-screen"
)
