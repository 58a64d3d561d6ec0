package domain

import "errors"

var (
	ErrNotFound      = errors.New("requirement not found")
	ErrUnknownMember = errors.New("author is not a registered member")
)
