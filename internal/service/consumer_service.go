package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/pkg/mailer"
	"realtime-chat-be/internal/repository/specification"
	"realtime-chat-be/internal/repository/unitofwork"
	"realtime-chat-be/pkg/events"
	pktNats "realtime-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process chat-event bus and performs the slow
// side effects the request path must not wait on: forwarding events to NATS
// for external consumers, and emailing offline private-room counterparts.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
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
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Data,
			OccurredAt: envelope.OccurredAt,
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to forward event %s to NATS: %v", envelope.Type, err)
		}
	}

	if envelope.Type == events.TypeMessageCreated {
		cs.notifyOfflineRecipients(ctx, envelope.Data)
	}

	msg.Ack()
}

// notifyOfflineRecipients emails the counterpart of a private room when they
// have no live session. Best-effort: failures are logged and dropped.
func (cs *consumerService) notifyOfflineRecipients(ctx context.Context, data map[string]interface{}) {
	if cs.emailService == nil {
		return
	}
	if kind, _ := data["room_kind"].(string); kind != string(entity.RoomKindPrivate) {
		return
	}

	senderId, err := uuid.Parse(str(data["sender_id"]))
	if err != nil {
		return
	}
	roomId, err := uuid.Parse(str(data["room_id"]))
	if err != nil {
		return
	}

	participants, _ := data["participants"].([]interface{})
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: senderId})
	if err != nil || sender == nil {
		return
	}

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil || room == nil {
		return
	}
	roomName := "a direct chat"
	if room.Name != nil && *room.Name != "" {
		roomName = *room.Name
	}

	for _, p := range participants {
		id, err := uuid.Parse(str(p))
		if err != nil || id == senderId {
			continue
		}
		recipient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil || recipient == nil || recipient.IsOnline {
			continue
		}
		// Skip users seen recently; they likely just closed the tab.
		if time.Since(recipient.LastSeen) < 5*time.Minute {
			continue
		}
		if err := cs.emailService.SendUnreadNotification(recipient.Email, sender.DisplayName, roomName); err != nil {
			log.Printf("[WARN] Failed to send unread notification for room %s: %v", roomId, err)
		}
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
