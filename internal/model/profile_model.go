package model

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	DisplayName      string    `gorm:"type:varchar(100);not null"`
	Bio              *string   `gorm:"type:text"`
	Specialty        *string   `gorm:"type:varchar(100)"`
	OrganizationName *string   `gorm:"type:varchar(255)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
