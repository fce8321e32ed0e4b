package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("request rejected")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("too many attempts")
)
