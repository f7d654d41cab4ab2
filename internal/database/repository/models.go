package repository

import "time"

// Slot is one durable key/value row. Revision changes on every write.
type Slot struct {
	Key       string
	Value     string
	Revision  string
	UpdatedAt time.Time
}
