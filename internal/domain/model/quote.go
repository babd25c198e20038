package model

import "time"

// BrokerIdentity describes who is asking for a price.
// The zero value is an anonymous retail customer.
type BrokerIdentity struct {
	AccountID string `json:"account_id,omitempty"`
	IsBroker  bool   `json:"is_broker"`
}

// Quote is a persisted price calculation.
//
// @Description Saved quote with the resolved configuration and its calculation
type Quote struct {
	ID            string               `json:"id" bson:"_id" example:"3f1b8c1e-9a4d-4d7e-8a55-2a1c7c9e0b11"`
	AccountID     string               `json:"account_id,omitempty"`
	IsBroker      bool                 `json:"is_broker"`
	Configuration ProductConfiguration `json:"configuration"`
	Calculation   PriceCalculation     `json:"calculation"`
	CreatedAt     time.Time            `json:"created_at"`
}
