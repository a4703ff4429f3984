package entity

import (
	"time"

	"github.com/google/uuid"
)

type PostCategory string

const (
	PostCategoryAnxiety       PostCategory = "anxiety"
	PostCategoryDepression    PostCategory = "depression"
	PostCategoryStress        PostCategory = "stress"
	PostCategorySleep         PostCategory = "sleep"
	PostCategoryRelationships PostCategory = "relationships"
	PostCategoryGeneral       PostCategory = "general"
)

// ValidPostCategory reports whether c is one of the known forum categories.
func ValidPostCategory(c PostCategory) bool {
	switch c {
	case PostCategoryAnxiety, PostCategoryDepression, PostCategoryStress,
		PostCategorySleep, PostCategoryRelationships, PostCategoryGeneral:
		return true
	}
	return false
}

type Post struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Category  PostCategory
	Title     string
	Body      string
	IsFlagged bool // set by the content-safety scanner
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool

	// Populated on list/show reads, not stored columns
	LikeCount    int64
	CommentCount int64
	LikedByMe    bool
}

type Comment struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	UserId    uuid.UUID
	Body      string
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// PostLike is a (post, user) pair; toggling twice removes it.
type PostLike struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
}
