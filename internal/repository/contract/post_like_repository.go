package contract

import (
	"context"

	"mindwell-be/internal/entity"

	"github.com/google/uuid"
)

type PostLikeRepository interface {
	Create(ctx context.Context, like *entity.PostLike) error
	DeleteByPostAndUser(ctx context.Context, postId, userId uuid.UUID) error
	DeleteByPostId(ctx context.Context, postId uuid.UUID) error
	FindByPostAndUser(ctx context.Context, postId, userId uuid.UUID) (*entity.PostLike, error)
	CountByPostIds(ctx context.Context, postIds []uuid.UUID) (map[uuid.UUID]int64, error)
	FindPostIdsLikedByUser(ctx context.Context, userId uuid.UUID, postIds []uuid.UUID) (map[uuid.UUID]bool, error)
}
