package models

import "time"

// DateLayout is the wire format for all domain date fields.
const DateLayout = "2006-01-02"

// Meta carries the server-owned fields shared by every record. The id is
// assigned on create and never reused; timestamps are read-only. Decimal
// quantities elsewhere in these models stay strings at the boundary and are
// only parsed at the point of arithmetic.
type Meta struct {
	ID           int       `json:"id"`
	SupervisorID int       `json:"supervisor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordID returns the server-assigned primary key.
func (m Meta) RecordID() int { return m.ID }
