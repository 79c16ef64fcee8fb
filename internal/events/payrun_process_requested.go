package events

import "time"

const PayrunProcessRequestedTopic = "hr.payrun.process.requested.v1"

type PayrunProcessRequestedEvent struct {
	EventType   string    `json:"event_type"`
	PayrunID    string    `json:"payrun_id"`
	CompanyID   string    `json:"company_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
