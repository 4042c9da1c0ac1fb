package core

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a user-facing event emitted by the core; hosts decide how to display it.
type Notification struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Topic    string    `json:"topic,omitempty"`
	At       time.Time `json:"at"`
}

func NewNotification(topic string, sev Severity, msg string) Notification {
	return Notification{Message: msg, Severity: sev, Topic: topic, At: time.Now().UTC()}
}

// Notifier is any service that can deliver notifications. Notify must not block the caller.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a func to a Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// NopNotifier drops every notification.
var NopNotifier Notifier = NotifierFunc(func(Notification) {})
