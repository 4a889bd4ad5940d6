package domain

import "time"

// NotificationLevel mirrors the toast variants of the storefront UI.
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
	NotifyInfo    NotificationLevel = "info"
)

// Notification is a transient user-facing message emitted by a store
// operation. Delivery is fire-and-forget and decoupled from the operation's
// own state transition, so a lost notification never affects store state.
type Notification struct {
	SessionID string            `json:"sessionId"`
	Level     NotificationLevel `json:"level"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	At        time.Time         `json:"at"`
}
