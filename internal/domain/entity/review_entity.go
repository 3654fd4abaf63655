package entity

import "time"

// Review of a bootcamp. One per (bootcamp, user) pair, enforced by the store.
type Review struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	BootcampID string    `json:"bootcamp"`
	UserID     string    `json:"user"`
	CreatedAt  time.Time `json:"createdAt"`

	// Populated on demand, never stored.
	Bootcamp *Summary `json:"bootcampInfo,omitempty"`
}
