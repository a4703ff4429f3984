package implementation

import (
	"context"
	"errors"

	"mindwell-be/internal/entity"
	"mindwell-be/internal/mapper"
	"mindwell-be/internal/model"
	"mindwell-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostLikeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ForumMapper
}

func NewPostLikeRepository(db *gorm.DB) contract.PostLikeRepository {
	return &PostLikeRepositoryImpl{
		db:     db,
		mapper: mapper.NewForumMapper(),
	}
}

func (r *PostLikeRepositoryImpl) Create(ctx context.Context, like *entity.PostLike) error {
	m := r.mapper.PostLikeToModel(like)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*like = *r.mapper.PostLikeToEntity(m)
	return nil
}

func (r *PostLikeRepositoryImpl) DeleteByPostAndUser(ctx context.Context, postId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postId, userId).
		Delete(&model.PostLike{}).Error
}

func (r *PostLikeRepositoryImpl) DeleteByPostId(ctx context.Context, postId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postId).Delete(&model.PostLike{}).Error
}

func (r *PostLikeRepositoryImpl) FindByPostAndUser(ctx context.Context, postId, userId uuid.UUID) (*entity.PostLike, error) {
	var m model.PostLike
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PostLikeToEntity(&m), nil
}

func (r *PostLikeRepositoryImpl) CountByPostIds(ctx context.Context, postIds []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIds))
	if len(postIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostId uuid.UUID
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Select("post_id, COUNT(*) as total").
		Where("post_id IN ?", postIds).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostId] = row.Total
	}
	return counts, nil
}

func (r *PostLikeRepositoryImpl) FindPostIdsLikedByUser(ctx context.Context, userId uuid.UUID, postIds []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(postIds))
	if len(postIds) == 0 {
		return liked, nil
	}

	var rows []model.PostLike
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", userId, postIds).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		liked[row.PostId] = true
	}
	return liked, nil
}
