package domain

import (
	"time"
)

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionPending, ConnectionAccepted, ConnectionDeclined:
		return true
	default:
		return false
	}
}

// Terminal reports whether the request has been answered.
func (s ConnectionStatus) Terminal() bool {
	switch s {
	case ConnectionAccepted, ConnectionDeclined:
		return true
	case ConnectionPending:
		return false
	default:
		return false
	}
}

type ConnectionRequest struct {
	ID         string           `json:"id"`
	SenderID   string           `json:"sender_id"`
	ReceiverID string           `json:"receiver_id"`
	Message    *string          `json:"message"`
	Status     ConnectionStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Peer returns the other side of the connection relative to userID.
func (c *ConnectionRequest) Peer(userID string) string {
	if c.SenderID == userID {
		return c.ReceiverID
	}
	return c.SenderID
}
