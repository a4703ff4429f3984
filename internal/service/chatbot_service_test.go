package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"mindwell-be/internal/constant"
	"mindwell-be/internal/dto"
	"mindwell-be/internal/entity"
	"mindwell-be/internal/repository/contract"
	"mindwell-be/internal/repository/memory"
	"mindwell-be/internal/repository/specification"
	"mindwell-be/internal/repository/unitofwork"
	"mindwell-be/pkg/assistant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.ChatSession
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.ChatSession) error {
	r.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.ChatSession) error {
	r.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var byID *uuid.UUID
	var byUser *uuid.UUID
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			byID = &id
		case specification.UserOwnedBy:
			id := s.UserID
			byUser = &id
		}
	}
	for _, session := range r.sessions {
		if byID != nil && session.Id != *byID {
			continue
		}
		if byUser != nil && session.UserId != *byUser {
			continue
		}
		return session, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var byUser *uuid.UUID
	for _, spec := range specs {
		if s, ok := spec.(specification.UserOwnedBy); ok {
			id := s.UserID
			byUser = &id
		}
	}
	var res []*entity.ChatSession
	for _, session := range r.sessions {
		if byUser != nil && session.UserId != *byUser {
			continue
		}
		res = append(res, session)
	}
	return res, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeMessageRepo struct {
	messages       []*entity.ChatMessage
	failUserWrite  bool
	failReplyWrite bool
}

func (r *fakeMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	if !message.IsAssistant && r.failUserWrite {
		return errors.New("insert failed")
	}
	if message.IsAssistant && r.failReplyWrite {
		return errors.New("insert failed")
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) DeleteByChatSessionId(_ context.Context, sessionId uuid.UUID) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var bySession *uuid.UUID
	for _, spec := range specs {
		if s, ok := spec.(specification.ByChatSessionID); ok {
			id := s.ChatSessionID
			bySession = &id
		}
	}
	var res []*entity.ChatMessage
	for _, m := range r.messages {
		if bySession != nil && m.ChatSessionId != *bySession {
			continue
		}
		res = append(res, m)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeUow struct {
	sessionRepo *fakeSessionRepo
	messageRepo *fakeMessageRepo
}

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error               { return nil }
func (u *fakeUow) Rollback() error             { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository       { return nil }
func (u *fakeUow) ProfileRepository() contract.ProfileRepository { return nil }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessionRepo
}
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return u.messageRepo
}
func (u *fakeUow) PostRepository() contract.PostRepository         { return nil }
func (u *fakeUow) CommentRepository() contract.CommentRepository   { return nil }
func (u *fakeUow) PostLikeRepository() contract.PostLikeRepository { return nil }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type stubProvider struct {
	replyFn func(ctx context.Context, history []assistant.Message, userMessage string) (string, error)
	calls   int
	history []assistant.Message
}

func (p *stubProvider) Reply(ctx context.Context, history []assistant.Message, userMessage string, _ ...assistant.Option) (string, error) {
	p.calls++
	p.history = history
	if p.replyFn != nil {
		return p.replyFn(ctx, history, userMessage)
	}
	return "stub reply", nil
}

func newTestService(provider assistant.Provider) (*chatbotService, *fakeUow) {
	uow := &fakeUow{
		sessionRepo: &fakeSessionRepo{sessions: map[uuid.UUID]*entity.ChatSession{}},
		messageRepo: &fakeMessageRepo{},
	}
	svc := NewChatbotService(&fakeFactory{uow: uow}, provider, memory.NewTurnRegistry(), noopLogger{}).(*chatbotService)
	return svc, uow
}

func seedSession(uow *fakeUow, userId uuid.UUID) *entity.ChatSession {
	session := &entity.ChatSession{Id: uuid.New(), UserId: userId, Title: constant.DefaultSessionTitle}
	uow.sessionRepo.sessions[session.Id] = session
	return session
}

func TestCreateSessionStartsEmpty(t *testing.T) {
	svc, uow := newTestService(&stubProvider{})
	userId := uuid.New()

	res, err := svc.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, constant.DefaultSessionTitle, res.Title)

	history, err := svc.GetHistory(context.Background(), userId, res.Id)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, uow.messageRepo.messages)
}

func TestSendChatRejectsBlankMessage(t *testing.T) {
	provider := &stubProvider{}
	svc, uow := newTestService(provider)
	userId := uuid.New()
	session := seedSession(uow, userId)

	for _, message := range []string{"", "   ", "\n\t "} {
		_, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: message})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Zero(t, provider.calls, "blank input must not reach the provider")
	assert.Empty(t, uow.messageRepo.messages)
}

func TestSendChatPersistsUserThenAssistant(t *testing.T) {
	provider := &stubProvider{
		replyFn: func(_ context.Context, _ []assistant.Message, _ string) (string, error) {
			return "That sounds hard. Tell me more.", nil
		},
	}
	svc, uow := newTestService(provider)
	userId := uuid.New()
	session := seedSession(uow, userId)

	res, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "  rough week  "})
	require.NoError(t, err)

	require.Len(t, uow.messageRepo.messages, 2)
	assert.False(t, uow.messageRepo.messages[0].IsAssistant)
	assert.Equal(t, "rough week", uow.messageRepo.messages[0].Text)
	assert.True(t, uow.messageRepo.messages[1].IsAssistant)
	assert.Equal(t, "That sounds hard. Tell me more.", uow.messageRepo.messages[1].Text)

	assert.Equal(t, "rough week", res.Sent.Text)
	assert.Equal(t, constant.ReplySourceAssistant, res.Source)
}

func TestSendChatHistoryExcludesCurrentMessage(t *testing.T) {
	provider := &stubProvider{}
	svc, uow := newTestService(provider)
	userId := uuid.New()
	session := seedSession(uow, userId)

	_, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "first"})
	require.NoError(t, err)
	assert.Empty(t, provider.history)

	_, err = svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "second"})
	require.NoError(t, err)

	require.Len(t, provider.history, 2)
	assert.Equal(t, assistant.RoleUser, provider.history[0].Role)
	assert.Equal(t, "first", provider.history[0].Content)
	assert.Equal(t, assistant.RoleAssistant, provider.history[1].Role)
}

func TestSendChatFallsBackOnRemoteFailure(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantPart string
	}{
		{name: "anxiety keyword", message: "I've been feeling anxious all week", wantPart: "4-4-4"},
		{name: "crisis keyword", message: "I keep thinking about harming myself", wantPart: "988"},
		{name: "no keyword", message: "just checking in", wantPart: "I'm here to listen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{
				replyFn: func(context.Context, []assistant.Message, string) (string, error) {
					return "", errors.New("upstream unavailable")
				},
			}
			svc, uow := newTestService(provider)
			userId := uuid.New()
			session := seedSession(uow, userId)

			res, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: tt.message})
			require.NoError(t, err, "remote failure must not surface as an error")
			assert.Equal(t, constant.ReplySourceFallback, res.Source)
			assert.True(t, strings.Contains(res.Reply.Text, tt.wantPart),
				"reply %q should contain %q", res.Reply.Text, tt.wantPart)

			// Both sides of the turn are still persisted
			require.Len(t, uow.messageRepo.messages, 2)
			assert.True(t, uow.messageRepo.messages[1].IsAssistant)
		})
	}
}

func TestSendChatSessionOwnership(t *testing.T) {
	svc, uow := newTestService(&stubProvider{})
	owner := uuid.New()
	stranger := uuid.New()
	session := seedSession(uow, owner)

	_, err := svc.SendChat(context.Background(), stranger, session.Id, &dto.SendChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.SendChat(context.Background(), owner, uuid.New(), &dto.SendChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSendChatRejectsConcurrentTurn(t *testing.T) {
	svc, uow := newTestService(&stubProvider{})
	userId := uuid.New()
	session := seedSession(uow, userId)

	require.True(t, svc.turns.TryAcquire(session.Id.String()))
	defer svc.turns.Release(session.Id.String())

	_, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrTurnInFlight)
}

func TestSendChatAbortsWhenUserMessageWriteFails(t *testing.T) {
	provider := &stubProvider{}
	svc, uow := newTestService(provider)
	uow.messageRepo.failUserWrite = true
	userId := uuid.New()
	session := seedSession(uow, userId)

	_, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "hello"})
	require.Error(t, err)
	assert.Zero(t, provider.calls, "turn must abort before calling the provider")
	assert.Empty(t, uow.messageRepo.messages)
}

func TestSendChatSurvivesReplyWriteFailure(t *testing.T) {
	svc, uow := newTestService(&stubProvider{})
	uow.messageRepo.failReplyWrite = true
	userId := uuid.New()
	session := seedSession(uow, userId)

	res, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "stub reply", res.Reply.Text)

	// Only the user message made it to storage
	require.Len(t, uow.messageRepo.messages, 1)
	assert.False(t, uow.messageRepo.messages[0].IsAssistant)
}

func TestSendChatReleasesTurnAfterCompletion(t *testing.T) {
	svc, uow := newTestService(&stubProvider{})
	userId := uuid.New()
	session := seedSession(uow, userId)

	_, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "one"})
	require.NoError(t, err)
	_, err = svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "two"})
	require.NoError(t, err)
}

func TestDeleteSessionRemovesTranscript(t *testing.T) {
	svc, uow := newTestService(&stubProvider{})
	userId := uuid.New()
	session := seedSession(uow, userId)

	_, err := svc.SendChat(context.Background(), userId, session.Id, &dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(context.Background(), userId, session.Id))
	assert.Empty(t, uow.messageRepo.messages)
	assert.Empty(t, uow.sessionRepo.sessions)
}
