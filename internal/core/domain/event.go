package domain

import "time"

// Auth event types recorded in the audit trail.
const (
	EventUserRegistered = "user_registered"
	EventLoginSucceeded = "login_succeeded"
	EventLoginFailed    = "login_failed"
	EventLoggedOut      = "logged_out"
)

// AuthEvent is a single entry in the authentication audit trail.
type AuthEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	At        time.Time `json:"at"`
}

// Subject identifies the actor for sharding purposes: the user id when known,
// otherwise the submitted email.
func (e AuthEvent) Subject() string {
	if e.UserID != "" {
		return e.UserID
	}
	return e.Email
}
