package amqp

import (
	"encoding/json"
	"time"
)

const (
	ActionCreated   = "created"
	ActionPaid      = "paid"
	ActionDeleted   = "deleted"
	ActionGenerated = "generated"
)

// BillEventMessage is a lightweight record of a bill mutation. It carries
// only identifiers; consumers that need the full bill fetch it from storage.
type BillEventMessage struct {
	BillID    string    `json:"bill_id"`
	Owner     string    `json:"owner"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBillEventMessage(billID, owner, action string) *BillEventMessage {
	return &BillEventMessage{
		BillID:    billID,
		Owner:     owner,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *BillEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BillEventMessageFromJSON(data []byte) (*BillEventMessage, error) {
	var msg BillEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
