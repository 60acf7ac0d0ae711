// Package notify carries user-visible status messages out of the core.
// Notifications are fire-and-forget; they are never part of the core's
// correctness surface.
package notify

// Severity classifies a notification for presentation
type Severity string

const (
	// SeverityInfo is a routine status or success message
	SeverityInfo Severity = "info"
	// SeverityError is a failure the user should see
	SeverityError Severity = "error"
)

// Sink defines the interface for surfacing notifications
//
//go:generate mockgen -source=notify.go -destination=../mocks/notify.go -package=mocks -mock_names=Sink=MockSink
type Sink interface {
	// Notify surfaces a message. Implementations must not block and must
	// not fail the caller.
	Notify(title, description string, severity Severity)
}

// Notification is the wire form of a surfaced message
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}
