package conversation

import "time"

// Notification auto-clear delays. The first-login grant lingers a little
// longer than per-round change notices.
const (
	NotificationClearDelay           = 3 * time.Second
	FirstLoginNotificationClearDelay = 5 * time.Second
)

// NotificationKind separates the two change-notice styles.
type NotificationKind string

const (
	NotificationCoins     NotificationKind = "coins"
	NotificationAffection NotificationKind = "affection"
)

// Notification is the transient change notice shown for one round. At
// most one is visible at a time; a new one replaces the old, and each
// clears itself after its delay.
type Notification struct {
	Kind           NotificationKind
	Coins          int
	AffectionDelta int
}
