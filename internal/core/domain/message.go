package domain

import (
	"regexp"
	"time"
)

// MessageStatus is the triage state of a contact message.
type MessageStatus string

const (
	MessageNew        MessageStatus = "new"
	MessageInProgress MessageStatus = "in-progress"
	MessageResolved   MessageStatus = "resolved"
)

var contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidContactEmail reports whether s has the local@domain.tld shape.
func ValidContactEmail(s string) bool {
	return contactEmailPattern.MatchString(s)
}

// Message is a contact-form submission.
type Message struct {
	ID        string        `json:"_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Message   string        `json:"message"`
	UserID    string        `json:"userId,omitempty"`
	UserEmail string        `json:"userEmail"`
	Status    MessageStatus `json:"status"`
	IsRead    bool          `json:"isRead"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// MessageUpdate holds the only fields an admin may change on a message.
type MessageUpdate struct {
	Status *MessageStatus
	IsRead *bool
}

// Empty reports whether no field is set.
func (u MessageUpdate) Empty() bool {
	return u.Status == nil && u.IsRead == nil
}

// Valid reports whether s is one of the known statuses.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageNew, MessageInProgress, MessageResolved:
		return true
	}
	return false
}
