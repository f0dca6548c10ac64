package domain

import "errors"

var (
	ErrMalformedEvent = errors.New("malformed media event")
	ErrTitleNotFound  = errors.New("title not found")
	ErrNoPosterFound  = errors.New("no poster found")
)
