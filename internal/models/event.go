package models

import "time"

type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	IsPublic     bool      `json:"is_public"`
	MaxAttendees *int      `json:"max_attendees,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// AttendeesCount is derived from the rsvps table on every read.
	AttendeesCount int `json:"attendees_count"`
}

// EventCreate is the payload for POST /events. IsPublic defaults to
// true when omitted.
type EventCreate struct {
	Title        string    `json:"title" validate:"required,min=3,max=100"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	IsPublic     *bool     `json:"is_public"`
	MaxAttendees *int      `json:"max_attendees" validate:"omitempty,gt=0"`
	ImageURL     string    `json:"image_url"`
}

// EventUpdate is the payload for PATCH /events/{id}. Nil fields are
// left untouched.
type EventUpdate struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description  *string    `json:"description,omitempty"`
	Location     *string    `json:"location,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	IsPublic     *bool      `json:"is_public,omitempty"`
	MaxAttendees *int       `json:"max_attendees,omitempty" validate:"omitempty,gt=0"`
	ImageURL     *string    `json:"image_url,omitempty"`
}
