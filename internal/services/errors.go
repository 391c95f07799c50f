// Package services holds the ownership-scoped note store and the credential
// verifying token issuer. Both are constructed once per process and take the
// caller's already-authenticated user id as an explicit argument; nothing in
// this package ever re-derives identity from request data.
package services

import "errors"

var (
	// ErrNoteNotFound covers both a missing note and a note owned by someone
	// else. Callers must not be able to tell the two apart.
	ErrNoteNotFound = errors.New("note not found")

	// ErrInvalidNoteInput reports a title or content outside the allowed
	// lengths (title 2-100 characters, content up to 8000).
	ErrInvalidNoteInput = errors.New("invalid note input")

	// ErrUnexpectedRowCount reports a mutation that completed without a
	// database error yet affected a number of rows other than one.
	ErrUnexpectedRowCount = errors.New("unexpected number of rows affected")

	// ErrInvalidCredentials is the single rejection outcome for token
	// issuance. Unknown username and wrong password both map here.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
