package service

import (
	"context"
	"testing"

	"mindwell-be/internal/constant"
	"mindwell-be/internal/model"
	"mindwell-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	types map[string]*model.NotificationType
	users map[string][]model.User

	created        []model.Notification
	rolesQueried   []string
	markedID       uuid.UUID
	markedUserID   uuid.UUID
	markAllUserIDs []uuid.UUID
}

func (f *fakeNotificationRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	f.markedID = notificationID
	f.markedUserID = userID
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	f.markAllUserIDs = append(f.markAllUserIDs, userID)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error) {
	if t, ok := f.types[code]; ok {
		return t, nil
	}
	return nil, assert.AnError
}

func (f *fakeNotificationRepo) GetUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	f.rolesQueried = append(f.rolesQueried, role)
	return f.users[role], nil
}

type fakeDelivery struct {
	sent      map[uuid.UUID][]model.Notification
	broadcast []model.Notification
}

func newFakeDelivery() *fakeDelivery {
	return &fakeDelivery{sent: make(map[uuid.UUID][]model.Notification)}
}

func (f *fakeDelivery) Send(userID uuid.UUID, n model.Notification) {
	f.sent[userID] = append(f.sent[userID], n)
}

func (f *fakeDelivery) Broadcast(n model.Notification) {
	f.broadcast = append(f.broadcast, n)
}

func TestFlaggedPostNotifiesProfessionals(t *testing.T) {
	proOne := model.User{Id: uuid.New()}
	proTwo := model.User{Id: uuid.New()}
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			constant.EventPostFlagged: {
				Code:        constant.EventPostFlagged,
				DisplayName: "Post flagged for review",
				Template:    `A post was flagged by the safety scanner: "{post_title}"`,
				TargetType:  "ROLE",
				TargetRole:  "professional",
				IsActive:    true,
			},
		},
		users: map[string][]model.User{
			"professional": {proOne, proTwo},
		},
	}
	delivery := newFakeDelivery()
	svc := NewNotificationService(repo, nil, delivery, noopLogger{})

	postID := uuid.New()
	err := svc.handleEvent(context.Background(), events.New("events."+constant.EventPostFlagged, map[string]interface{}{
		"post_id":    postID.String(),
		"post_title": "feeling hopeless",
	}))
	require.NoError(t, err)

	require.Equal(t, []string{"professional"}, repo.rolesQueried)
	require.Len(t, repo.created, 2)
	recipients := []uuid.UUID{repo.created[0].UserID, repo.created[1].UserID}
	assert.ElementsMatch(t, []uuid.UUID{proOne.Id, proTwo.Id}, recipients)
	assert.Contains(t, repo.created[0].Message, "feeling hopeless")
	assert.Len(t, delivery.sent[proOne.Id], 1)
	assert.Len(t, delivery.sent[proTwo.Id], 1)
}

func TestSelfTargetUsesPayloadRecipient(t *testing.T) {
	recipient := uuid.New()
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			constant.EventPostLiked: {
				Code:       constant.EventPostLiked,
				Template:   `Someone appreciated your post "{post_title}"`,
				TargetType: "SELF",
				IsActive:   true,
			},
		},
	}
	delivery := newFakeDelivery()
	svc := NewNotificationService(repo, nil, delivery, noopLogger{})

	err := svc.handleEvent(context.Background(), events.New("events."+constant.EventPostLiked, map[string]interface{}{
		"recipient_id": recipient.String(),
		"post_title":   "a good day",
	}))
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, recipient, repo.created[0].UserID)
	assert.Empty(t, repo.rolesQueried)
}

func TestBroadcastIsPushOnly(t *testing.T) {
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			"SYSTEM_BROADCAST": {
				Code:       "SYSTEM_BROADCAST",
				Template:   "{message}",
				TargetType: "BROADCAST",
				IsActive:   true,
			},
		},
	}
	delivery := newFakeDelivery()
	svc := NewNotificationService(repo, nil, delivery, noopLogger{})

	err := svc.handleEvent(context.Background(), events.New("events.SYSTEM_BROADCAST", map[string]interface{}{
		"message": "maintenance tonight",
	}))
	require.NoError(t, err)

	assert.Empty(t, repo.created)
	require.Len(t, delivery.broadcast, 1)
	assert.Equal(t, "maintenance tonight", delivery.broadcast[0].Message)
}

func TestInactiveTypeIsSkipped(t *testing.T) {
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			constant.EventCommentCreated: {
				Code:       constant.EventCommentCreated,
				Template:   "reply",
				TargetType: "SELF",
				IsActive:   false,
			},
		},
	}
	delivery := newFakeDelivery()
	svc := NewNotificationService(repo, nil, delivery, noopLogger{})

	err := svc.handleEvent(context.Background(), events.New("events."+constant.EventCommentCreated, map[string]interface{}{
		"recipient_id": uuid.New().String(),
	}))
	require.NoError(t, err)
	assert.Empty(t, repo.created)
	assert.Empty(t, delivery.sent)
}

func TestMarkAsReadScopedToOwner(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, nil, nil, noopLogger{})

	notifID := uuid.New()
	ownerID := uuid.New()
	require.NoError(t, svc.MarkAsRead(context.Background(), notifID, ownerID))

	assert.Equal(t, notifID, repo.markedID)
	assert.Equal(t, ownerID, repo.markedUserID)
}
