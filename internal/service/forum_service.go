package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mindwell-be/internal/constant"
	"mindwell-be/internal/dto"
	"mindwell-be/internal/entity"
	"mindwell-be/internal/pkg/logger"
	"mindwell-be/internal/repository/specification"
	"mindwell-be/internal/repository/unitofwork"
	"mindwell-be/pkg/events"
	pktNats "mindwell-be/pkg/nats"

	"github.com/google/uuid"
)

type IForumService interface {
	CreatePost(ctx context.Context, userId uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, userId, postId uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, userId, postId uuid.UUID) error
	GetPost(ctx context.Context, userId, postId uuid.UUID) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, userId uuid.UUID, query *dto.ListPostsQuery) ([]dto.PostResponse, error)

	CreateComment(ctx context.Context, userId, postId uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userId, commentId uuid.UUID) error
	ListComments(ctx context.Context, postId uuid.UUID) ([]dto.CommentResponse, error)

	ToggleLike(ctx context.Context, userId, postId uuid.UUID) (*dto.LikeResponse, error)
}

type forumService struct {
	uowFactory     unitofwork.RepositoryFactory
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewForumService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, eventPublisher *pktNats.Publisher, log logger.ILogger) IForumService {
	return &forumService{
		uowFactory:     uowFactory,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *forumService) CreatePost(ctx context.Context, userId uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	category := entity.PostCategory(req.Category)
	if !entity.ValidPostCategory(category) {
		return nil, errors.New("unknown category")
	}

	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Content)
	if title == "" || body == "" {
		return nil, errors.New("title and content are required")
	}

	post := &entity.Post{
		Id:        uuid.New(),
		UserId:    userId,
		Category:  category,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PostRepository().Create(ctx, post); err != nil {
		return nil, err
	}

	// Queue the safety scan; posting never waits on it
	if err := s.publisher.PublishPostScan(ctx, post.Id); err != nil {
		s.log.Warn("forum", "failed to queue post safety scan", map[string]interface{}{
			"post_id": post.Id.String(),
			"error":   err.Error(),
		})
	}

	return s.toPostResponse(ctx, uow, post, userId)
}

func (s *forumService) UpdatePost(ctx context.Context, userId, postId uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := s.ownedPost(ctx, uow, userId, postId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post.Title = strings.TrimSpace(req.Title)
	post.Body = strings.TrimSpace(req.Content)
	post.UpdatedAt = &now

	if err := uow.PostRepository().Update(ctx, post); err != nil {
		return nil, err
	}

	// Edits are rescanned; the previous verdict no longer applies
	if err := s.publisher.PublishPostScan(ctx, post.Id); err != nil {
		s.log.Warn("forum", "failed to queue post safety scan", map[string]interface{}{
			"post_id": post.Id.String(),
			"error":   err.Error(),
		})
	}

	return s.toPostResponse(ctx, uow, post, userId)
}

func (s *forumService) DeletePost(ctx context.Context, userId, postId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedPost(ctx, uow, userId, postId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CommentRepository().DeleteByPostId(ctx, postId); err != nil {
		return err
	}
	if err := uow.PostLikeRepository().DeleteByPostId(ctx, postId); err != nil {
		return err
	}
	if err := uow.PostRepository().Delete(ctx, postId); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *forumService) GetPost(ctx context.Context, userId, postId uuid.UUID) (*dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	return s.toPostResponse(ctx, uow, post, userId)
}

func (s *forumService) ListPosts(ctx context.Context, userId uuid.UUID, query *dto.ListPostsQuery) ([]dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	}
	if query.Category != "" {
		specs = append(specs, specification.ByCategory{Category: query.Category})
	}

	posts, err := uow.PostRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []dto.PostResponse{}, nil
	}

	postIds := make([]uuid.UUID, 0, len(posts))
	authorIds := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		postIds = append(postIds, post.Id)
		authorIds = append(authorIds, post.UserId)
	}

	likeCounts, err := uow.PostLikeRepository().CountByPostIds(ctx, postIds)
	if err != nil {
		return nil, err
	}
	commentCounts, err := uow.CommentRepository().CountByPostIds(ctx, postIds)
	if err != nil {
		return nil, err
	}
	likedByMe, err := uow.PostLikeRepository().FindPostIdsLikedByUser(ctx, userId, postIds)
	if err != nil {
		return nil, err
	}
	authors, err := s.loadAuthors(ctx, uow, authorIds)
	if err != nil {
		return nil, err
	}

	res := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		post.LikeCount = likeCounts[post.Id]
		post.CommentCount = commentCounts[post.Id]
		post.LikedByMe = likedByMe[post.Id]
		res = append(res, buildPostResponse(post, authors[post.UserId]))
	}
	return res, nil
}

func (s *forumService) CreateComment(ctx context.Context, userId, postId uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	body := strings.TrimSpace(req.Content)
	if body == "" {
		return nil, errors.New("comment must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &entity.Comment{
		Id:        uuid.New(),
		PostId:    postId,
		UserId:    userId,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := uow.CommentRepository().Create(ctx, comment); err != nil {
		return nil, err
	}

	// Tell the post author, unless they commented on their own post
	if s.eventPublisher != nil && post.UserId != userId {
		event := events.New(constant.EventCommentCreated, map[string]interface{}{
			"post_id":      postId.String(),
			"post_title":   post.Title,
			"recipient_id": post.UserId.String(),
			"actor_id":     userId.String(),
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("forum", "failed to publish comment event", map[string]interface{}{
				"post_id": postId.String(),
				"error":   err.Error(),
			})
		}
	}

	authors, err := s.loadAuthors(ctx, uow, []uuid.UUID{userId})
	if err != nil {
		return nil, err
	}
	return buildCommentResponse(comment, authors[userId]), nil
}

func (s *forumService) DeleteComment(ctx context.Context, userId, commentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	comment, err := uow.CommentRepository().FindOne(ctx, specification.ByID{ID: commentId})
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserId != userId {
		return ErrNotOwner
	}

	return uow.CommentRepository().Delete(ctx, commentId)
}

func (s *forumService) ListComments(ctx context.Context, postId uuid.UUID) ([]dto.CommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := uow.CommentRepository().FindAll(ctx,
		specification.ByPostID{PostID: postId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	authorIds := make([]uuid.UUID, 0, len(comments))
	for _, comment := range comments {
		authorIds = append(authorIds, comment.UserId)
	}
	authors, err := s.loadAuthors(ctx, uow, authorIds)
	if err != nil {
		return nil, err
	}

	res := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		res = append(res, *buildCommentResponse(comment, authors[comment.UserId]))
	}
	return res, nil
}

// ToggleLike likes an unliked post and unlikes a liked one.
func (s *forumService) ToggleLike(ctx context.Context, userId, postId uuid.UUID) (*dto.LikeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	existing, err := uow.PostLikeRepository().FindByPostAndUser(ctx, postId, userId)
	if err != nil {
		return nil, err
	}

	liked := false
	if existing == nil {
		like := &entity.PostLike{
			Id:        uuid.New(),
			PostId:    postId,
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := uow.PostLikeRepository().Create(ctx, like); err != nil {
			return nil, err
		}
		liked = true

		if s.eventPublisher != nil && post.UserId != userId {
			event := events.New(constant.EventPostLiked, map[string]interface{}{
				"post_id":      postId.String(),
				"post_title":   post.Title,
				"recipient_id": post.UserId.String(),
				"actor_id":     userId.String(),
			})
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.log.Warn("forum", "failed to publish like event", map[string]interface{}{
					"post_id": postId.String(),
					"error":   err.Error(),
				})
			}
		}
	} else {
		if err := uow.PostLikeRepository().DeleteByPostAndUser(ctx, postId, userId); err != nil {
			return nil, err
		}
	}

	counts, err := uow.PostLikeRepository().CountByPostIds(ctx, []uuid.UUID{postId})
	if err != nil {
		return nil, err
	}

	return &dto.LikeResponse{
		PostId:    postId,
		Liked:     liked,
		LikeCount: counts[postId],
	}, nil
}

type postAuthor struct {
	name string
	role string
}

func (s *forumService) loadAuthors(ctx context.Context, uow unitofwork.UnitOfWork, userIds []uuid.UUID) (map[uuid.UUID]postAuthor, error) {
	res := make(map[uuid.UUID]postAuthor)
	if len(userIds) == 0 {
		return res, nil
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: userIds})
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		res[user.Id] = postAuthor{name: user.FullName, role: string(user.Role)}
	}

	// Display names come from profiles when present
	profiles, err := uow.ProfileRepository().FindAll(ctx, specification.ByUserIDs{UserIDs: userIds})
	if err != nil {
		return nil, err
	}
	for _, profile := range profiles {
		if author, ok := res[profile.UserId]; ok && profile.DisplayName != "" {
			author.name = profile.DisplayName
			res[profile.UserId] = author
		}
	}
	return res, nil
}

func (s *forumService) ownedPost(ctx context.Context, uow unitofwork.UnitOfWork, userId, postId uuid.UUID) (*entity.Post, error) {
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserId != userId {
		return nil, ErrNotOwner
	}
	return post, nil
}

func (s *forumService) toPostResponse(ctx context.Context, uow unitofwork.UnitOfWork, post *entity.Post, viewerId uuid.UUID) (*dto.PostResponse, error) {
	likeCounts, err := uow.PostLikeRepository().CountByPostIds(ctx, []uuid.UUID{post.Id})
	if err != nil {
		return nil, err
	}
	commentCounts, err := uow.CommentRepository().CountByPostIds(ctx, []uuid.UUID{post.Id})
	if err != nil {
		return nil, err
	}
	likedByMe, err := uow.PostLikeRepository().FindPostIdsLikedByUser(ctx, viewerId, []uuid.UUID{post.Id})
	if err != nil {
		return nil, err
	}
	authors, err := s.loadAuthors(ctx, uow, []uuid.UUID{post.UserId})
	if err != nil {
		return nil, err
	}

	post.LikeCount = likeCounts[post.Id]
	post.CommentCount = commentCounts[post.Id]
	post.LikedByMe = likedByMe[post.Id]

	res := buildPostResponse(post, authors[post.UserId])
	return &res, nil
}

func buildPostResponse(post *entity.Post, author postAuthor) dto.PostResponse {
	res := dto.PostResponse{
		Id:           post.Id,
		AuthorId:     post.UserId,
		AuthorName:   author.name,
		AuthorRole:   author.role,
		Title:        post.Title,
		Content:      post.Body,
		Category:     string(post.Category),
		IsFlagged:    post.IsFlagged,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		LikedByMe:    post.LikedByMe,
		CreatedAt:    post.CreatedAt,
	}
	if post.UpdatedAt != nil {
		res.UpdatedAt = *post.UpdatedAt
	}
	return res
}

func buildCommentResponse(comment *entity.Comment, author postAuthor) *dto.CommentResponse {
	return &dto.CommentResponse{
		Id:         comment.Id,
		PostId:     comment.PostId,
		AuthorId:   comment.UserId,
		AuthorName: author.name,
		AuthorRole: author.role,
		Content:    comment.Body,
		CreatedAt:  comment.CreatedAt,
	}
}
