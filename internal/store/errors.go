// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "errors"

// ErrNotFound is wrapped into errors returned when a mutation references
// an entity that does not exist. Test with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned for mutations submitted after Close.
var ErrClosed = errors.New("store is closed")

// ValidationError reports invalid caller input. It is raised before a
// mutation is queued, and Message is safe to show to end users verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
