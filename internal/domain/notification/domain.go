package notification

import "time"

// Payload is built for a single due user and consumed by exactly one send.
type Payload struct {
	UserID      string `json:"user_id"`
	TargetToken string `json:"token"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
