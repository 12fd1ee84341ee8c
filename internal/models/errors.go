// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

// ValidationError reports a field that is missing or outside its allowed
// values. Handlers map it to 400 Bad Request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// invalid builds a ValidationError for the given field.
func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// ErrEmailTaken is returned by the user store when the unique email
// constraint rejects a write.
var ErrEmailTaken = errors.New("email already in use")
