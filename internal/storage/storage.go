// Package storage defines the errors shared between the persistence
// layer and the HTTP handlers that map them to status codes.
package storage

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrEventNotFound = errors.New("event not found")
	ErrRSVPNotFound  = errors.New("rsvp not found")
	ErrNotOwner      = errors.New("not the event owner")
)
