// Package rsvp derives the display state of an event's RSVP list:
// attendance count, fullness against an optional capacity, and the
// viewer's own status. Everything here is a pure computation over the
// authoritative RSVP list; counts are recomputed on every call and
// never kept as an incremented counter.
package rsvp

import "eventhub/internal/models"

const (
	StatusGoing    = "going"
	StatusMaybe    = "maybe"
	StatusNotGoing = "not_going"
)

// StatusNone marks a viewer without an RSVP record for the event.
const StatusNone = ""

// ValidStatus reports whether s is one of the three RSVP statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusGoing, StatusMaybe, StatusNotGoing:
		return true
	}
	return false
}

// AttendingCount counts records with status "going". A nil or empty
// list counts as zero. The result does not depend on record order.
func AttendingCount(rsvps []models.RSVP) int {
	n := 0
	for _, r := range rsvps {
		if r.Status == StatusGoing {
			n++
		}
	}
	return n
}

// IsFull reports whether the event is at capacity. An unset capacity
// never fills, regardless of how many records are attending.
func IsFull(capacity *int, rsvps []models.RSVP) bool {
	if capacity == nil {
		return false
	}
	return AttendingCount(rsvps) >= *capacity
}

// FillRatio returns attending/capacity clamped to [0, 1]. It returns 0
// when capacity is unset or not positive; callers that need to tell
// "no capacity" apart from "nobody attending" check the capacity field
// themselves.
func FillRatio(capacity *int, rsvps []models.RSVP) float64 {
	if capacity == nil || *capacity <= 0 {
		return 0
	}
	ratio := float64(AttendingCount(rsvps)) / float64(*capacity)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// ViewerStatus returns the status of the record belonging to
// viewerUserID, or StatusNone if there is none. Duplicate records for
// one user should not exist, but if they do the most recently updated
// one wins.
func ViewerStatus(rsvps []models.RSVP, viewerUserID string) string {
	var latest *models.RSVP
	for i := range rsvps {
		r := &rsvps[i]
		if r.UserID != viewerUserID {
			continue
		}
		if latest == nil || r.UpdatedAt.After(latest.UpdatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return StatusNone
	}
	return latest.Status
}

// CanRSVP reports whether the viewer may submit the given status.
// "going" is rejected on a full event unless the viewer is already
// attending (an attendee may always re-submit or withdraw); "maybe"
// and "not_going" are always allowed.
func CanRSVP(status string, full bool, viewerStatus string) bool {
	if status != StatusGoing {
		return true
	}
	if !full {
		return true
	}
	return viewerStatus == StatusGoing
}
