package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"mindwell-be/internal/model"
	"mindwell-be/internal/repository"
	"mindwell-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type stubNotificationRepo struct {
	repository.NotificationRepository

	gotLimit  int
	gotOffset int
	markedID  uuid.UUID
	markedBy  uuid.UUID
}

func (s *stubNotificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return []model.Notification{}, 0, nil
}

func (s *stubNotificationRepo) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	s.markedID = notificationID
	s.markedBy = userID
	return nil
}

func newTestApp(repo repository.NotificationRepository, userID uuid.UUID) (*fiber.App, *NotificationHandler) {
	svc := service.NewNotificationService(repo, nil, nil, noopLogger{})
	h := NewNotificationHandler(svc, nil, nil, noopLogger{})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})
	app.Get("/notifications", h.GetNotifications)
	app.Patch("/notifications/:id/read", h.MarkAsRead)
	return app, h
}

func TestGetNotificationsClampsBadPaging(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"zero limit", "?limit=0", 20, 0},
		{"negative limit", "?limit=-5", 20, 0},
		{"negative offset", "?offset=-10", 20, 0},
		{"normal paging", "?limit=10&offset=30", 10, 30},
		{"no query", "", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubNotificationRepo{}
			app, _ := newTestApp(repo, uuid.New())

			resp, err := app.Test(httptest.NewRequest("GET", "/notifications"+tt.query, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			assert.Equal(t, tt.wantLimit, repo.gotLimit)
			assert.Equal(t, tt.wantOffset, repo.gotOffset)

			var body struct {
				Page  int `json:"page"`
				Limit int `json:"limit"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.GreaterOrEqual(t, body.Page, 1)
			assert.Equal(t, tt.wantLimit, body.Limit)
		})
	}
}

func TestMarkAsReadUsesAuthenticatedUser(t *testing.T) {
	repo := &stubNotificationRepo{}
	userID := uuid.New()
	app, _ := newTestApp(repo, userID)

	notifID := uuid.New()
	resp, err := app.Test(httptest.NewRequest("PATCH", "/notifications/"+notifID.String()+"/read", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, notifID, repo.markedID)
	assert.Equal(t, userID, repo.markedBy, "the update must be scoped to the caller, not just the notification id")
}
