package domain

import "time"

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
	ConnectionBlocked  ConnectionStatus = "blocked"
)

// Connection is a request from one user to another. Created as pending by
// the requester; only the receiver may move it to accepted or rejected.
type Connection struct {
	ID          int              `json:"id" db:"id"`
	RequesterID int              `json:"requester_id" db:"requester_id"`
	ReceiverID  int              `json:"receiver_id" db:"receiver_id"`
	Status      ConnectionStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

func (c *Connection) HasUser(userID int) bool {
	return c.RequesterID == userID || c.ReceiverID == userID
}

func (c *Connection) OtherUserID(userID int) (int, bool) {
	if c.RequesterID == userID {
		return c.ReceiverID, true
	}
	if c.ReceiverID == userID {
		return c.RequesterID, true
	}
	return 0, false
}
