package unitofwork

import (
	"context"

	"mindwell-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProfileRepository() contract.ProfileRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository

	PostRepository() contract.PostRepository
	CommentRepository() contract.CommentRepository
	PostLikeRepository() contract.PostLikeRepository
}
