package service

import "errors"

var (
	ErrEmptyMessage    = errors.New("message must not be empty")
	ErrSessionNotFound = errors.New("chat session not found")
	ErrTurnInFlight    = errors.New("a reply for this session is still being generated")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("resource does not belong to the user")

	ErrInvalidOAuthState = errors.New("unknown or expired oauth state")
)
