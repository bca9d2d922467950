package domain

import "time"

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
	NotifyInfo    NotificationKind = "info"
)

const (
	// DefaultNotifyDuration is how long a notification stays visible.
	DefaultNotifyDuration = 5 * time.Second

	// ErrorNotifyDuration keeps error messages on screen longer.
	ErrorNotifyDuration = 8 * time.Second
)

// A Notification is a transient user-facing message. A zero Duration
// means "use the default"; a negative one keeps the notification until
// it is removed explicitly.
type Notification struct {
	ID       string
	Kind     NotificationKind
	Title    string
	Message  string
	Duration time.Duration
}
