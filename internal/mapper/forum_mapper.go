package mapper

import (
	"time"

	"mindwell-be/internal/entity"
	"mindwell-be/internal/model"

	"gorm.io/gorm"
)

type ForumMapper struct{}

func NewForumMapper() *ForumMapper {
	return &ForumMapper{}
}

func (m *ForumMapper) PostToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Post{
		Id:        p.Id,
		UserId:    p.UserId,
		Category:  entity.PostCategory(p.Category),
		Title:     p.Title,
		Body:      p.Body,
		IsFlagged: p.IsFlagged,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: p.DeletedAt.Valid,
	}
}

func (m *ForumMapper) PostToModel(p *entity.Post) *model.Post {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Post{
		Id:        p.Id,
		UserId:    p.UserId,
		Category:  string(p.Category),
		Title:     p.Title,
		Body:      p.Body,
		IsFlagged: p.IsFlagged,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ForumMapper) CommentToEntity(c *model.Comment) *entity.Comment {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Comment{
		Id:        c.Id,
		PostId:    c.PostId,
		UserId:    c.UserId,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		DeletedAt: deletedAt,
		IsDeleted: c.DeletedAt.Valid,
	}
}

func (m *ForumMapper) CommentToModel(c *entity.Comment) *model.Comment {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.Comment{
		Id:        c.Id,
		PostId:    c.PostId,
		UserId:    c.UserId,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ForumMapper) PostLikeToEntity(l *model.PostLike) *entity.PostLike {
	if l == nil {
		return nil
	}
	return &entity.PostLike{
		Id:        l.Id,
		PostId:    l.PostId,
		UserId:    l.UserId,
		CreatedAt: l.CreatedAt,
	}
}

func (m *ForumMapper) PostLikeToModel(l *entity.PostLike) *model.PostLike {
	if l == nil {
		return nil
	}
	return &model.PostLike{
		Id:        l.Id,
		PostId:    l.PostId,
		UserId:    l.UserId,
		CreatedAt: l.CreatedAt,
	}
}
