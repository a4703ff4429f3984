package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_comments_post_created,priority:1"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Body      string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_comments_post_created,priority:2"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}
