package service

import (
	"context"
	"strings"
	"time"

	"mindwell-be/internal/constant"
	"mindwell-be/internal/dto"
	"mindwell-be/internal/entity"
	"mindwell-be/internal/pkg/logger"
	"mindwell-be/internal/repository/memory"
	"mindwell-be/internal/repository/specification"
	"mindwell-be/internal/repository/unitofwork"
	"mindwell-be/pkg/assistant"
	"mindwell-be/pkg/fallback"

	"github.com/google/uuid"
)

type IChatbotService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error)
	GetSessions(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionResponse, error)
	GetHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]dto.ChatMessageResponse, error)
	SendChat(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}

type chatbotService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   assistant.Provider
	turns      *memory.TurnRegistry
	log        logger.ILogger
}

func NewChatbotService(uowFactory unitofwork.RepositoryFactory, provider assistant.Provider, turns *memory.TurnRegistry, log logger.ILogger) IChatbotService {
	return &chatbotService{
		uowFactory: uowFactory,
		provider:   provider,
		turns:      turns,
		log:        log,
	}
}

func (s *chatbotService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	// New sessions start with an empty transcript. The client renders its
	// own greeting.
	return &dto.ChatSessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (s *chatbotService) GetSessions(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		item := dto.ChatSessionResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
		}
		if session.UpdatedAt != nil {
			item.UpdatedAt = *session.UpdatedAt
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *chatbotService) GetHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		res = append(res, dto.ChatMessageResponse{
			Id:          message.Id,
			Text:        message.Text,
			IsAssistant: message.IsAssistant,
			CreatedAt:   message.CreatedAt,
		})
	}
	return res, nil
}

// SendChat runs one conversation turn. The user message is committed before
// the assistant is called, so a dropped reply never loses what the user
// typed. A remote failure degrades to the keyword responder instead of
// surfacing as an error.
func (s *chatbotService) SendChat(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	if !s.turns.TryAcquire(sessionId.String()) {
		return nil, ErrTurnInFlight
	}
	defer s.turns.Release(sessionId.String())

	// Snapshot the transcript before this turn's message is added; the
	// remote provider receives the prior context plus the new message
	// separately.
	priorMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	if len(priorMessages) > constant.ChatHistoryLimit {
		priorMessages = priorMessages[len(priorMessages)-constant.ChatHistoryLimit:]
	}

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		UserId:        userId,
		Text:          text,
		IsAssistant:   false,
		CreatedAt:     time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	history := make([]assistant.Message, 0, len(priorMessages))
	for _, m := range priorMessages {
		role := assistant.RoleUser
		if m.IsAssistant {
			role = assistant.RoleAssistant
		}
		history = append(history, assistant.Message{Role: role, Content: m.Text})
	}

	source := constant.ReplySourceAssistant
	replyText, replyErr := s.provider.Reply(ctx, history, text)
	if replyErr != nil {
		s.log.Warn("chatbot", "remote assistant failed, using fallback responder", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      replyErr.Error(),
		})
		replyText = fallback.Respond(text)
		source = constant.ReplySourceFallback
	}

	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		UserId:        userId,
		Text:          replyText,
		IsAssistant:   true,
		CreatedAt:     time.Now(),
	}

	// Persisting the reply is best effort. The user already has the text
	// in hand either way.
	persistUow := s.uowFactory.NewUnitOfWork(ctx)
	if err := persistUow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		s.log.Warn("chatbot", "failed to persist assistant reply", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	now := time.Now()
	session.UpdatedAt = &now
	if err := persistUow.ChatSessionRepository().Update(ctx, session); err != nil {
		s.log.Warn("chatbot", "failed to touch session", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	return &dto.SendChatResponse{
		Sent: dto.ChatMessageResponse{
			Id:          userMessage.Id,
			Text:        userMessage.Text,
			IsAssistant: false,
			CreatedAt:   userMessage.CreatedAt,
		},
		Reply: dto.ChatMessageResponse{
			Id:          assistantMessage.Id,
			Text:        assistantMessage.Text,
			IsAssistant: true,
			CreatedAt:   assistantMessage.CreatedAt,
		},
		Source: source,
	}, nil
}

func (s *chatbotService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.turns.Release(sessionId.String())
	return nil
}

func (s *chatbotService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
