package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Content  string `json:"content" validate:"required,min=10"`
	Category string `json:"category" validate:"required,oneof=anxiety depression stress sleep relationships general"`
}

type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required,min=10"`
}

type PostResponse struct {
	Id           uuid.UUID `json:"id"`
	AuthorId     uuid.UUID `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorRole   string    `json:"author_role"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	IsFlagged    bool      `json:"is_flagged"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	LikedByMe    bool      `json:"liked_by_me"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListPostsQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=anxiety depression stress sleep relationships general"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type CommentResponse struct {
	Id         uuid.UUID `json:"id"`
	PostId     uuid.UUID `json:"post_id"`
	AuthorId   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AuthorRole string    `json:"author_role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type LikeResponse struct {
	PostId    uuid.UUID `json:"post_id"`
	Liked     bool      `json:"liked"`
	LikeCount int64     `json:"like_count"`
}
