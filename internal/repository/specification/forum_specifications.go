package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPostID struct {
	PostID uuid.UUID
}

func (s ByPostID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("post_id = ?", s.PostID)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type FlaggedOnly struct{}

func (s FlaggedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_flagged = ?", true)
}
