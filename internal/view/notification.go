package view

import "time"

// Status is the tone of a notification.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
)

// NotificationDuration is how long a toast stays on screen.
const NotificationDuration = 2 * time.Second

// Notification is a transient toast shown after an interaction.
type Notification struct {
	Status      Status        `json:"status"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Duration    time.Duration `json:"duration"`
	Closable    bool          `json:"closable"`
}

// Success builds a closable success toast.
func Success(title, description string) Notification {
	return Notification{Status: StatusSuccess, Title: title, Description: description, Duration: NotificationDuration, Closable: true}
}

// Failure builds a closable error toast.
func Failure(title, description string) Notification {
	return Notification{Status: StatusError, Title: title, Description: description, Duration: NotificationDuration, Closable: true}
}

// Info builds a closable informational toast.
func Info(title, description string) Notification {
	return Notification{Status: StatusInfo, Title: title, Description: description, Duration: NotificationDuration, Closable: true}
}

// FromFlashes turns plain success and error flashes into toasts and appends
// the queued notifications, so layouts render a single kind of message.
func FromFlashes(f FlashData) []Notification {
	out := make([]Notification, 0, len(f.Success)+len(f.Error)+len(f.Notifications))
	for _, m := range f.Success {
		out = append(out, Success(m, ""))
	}
	for _, m := range f.Error {
		out = append(out, Failure(m, ""))
	}
	return append(out, f.Notifications...)
}
