package service

import (
	"context"
	"encoding/json"

	"mindwell-be/internal/constant"
	"mindwell-be/internal/dto"
	"mindwell-be/internal/pkg/logger"
	"mindwell-be/internal/repository/specification"
	"mindwell-be/internal/repository/unitofwork"
	"mindwell-be/pkg/events"
	"mindwell-be/pkg/fallback"
	pktNats "mindwell-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService runs the content safety scanner. It drains the post-scan
// queue, checks each post for crisis language and flags matches for
// moderator review.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishPostScanMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("safety-scan", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads never become valid, don't retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: payload.PostId})
	if err != nil {
		cs.log.Error("safety-scan", "failed to load post", map[string]interface{}{
			"post_id": payload.PostId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}
	if post == nil {
		// Deleted before the scan ran
		msg.Ack()
		return
	}

	flagged := fallback.ContainsCrisisKeywords(post.Title) || fallback.ContainsCrisisKeywords(post.Body)

	if post.IsFlagged != flagged {
		if err := uow.PostRepository().SetFlagged(ctx, post.Id, flagged); err != nil {
			cs.log.Error("safety-scan", "failed to update flag", map[string]interface{}{
				"post_id": post.Id.String(),
				"error":   err.Error(),
			})
			msg.Nack()
			return
		}
	}

	if flagged && cs.eventPublisher != nil {
		event := events.New(constant.EventPostFlagged, map[string]interface{}{
			"post_id":      post.Id.String(),
			"post_title":   post.Title,
			"recipient_id": post.UserId.String(),
		})
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			cs.log.Warn("safety-scan", "failed to publish flagged event", map[string]interface{}{
				"post_id": post.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	cs.log.Info("safety-scan", "post scanned", map[string]interface{}{
		"post_id": post.Id.String(),
		"flagged": flagged,
	})
	msg.Ack()
}
