// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-assistant-be/internal/model"
	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	eventRepo contract.ISystemEventRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventRepo contract.ISystemEventRepository,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		eventRepo: eventRepo,
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
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	payloadJson, err := json.Marshal(event.Data)
	if err != nil {
		log.Printf("[ERROR] Failed to re-encode event payload: %v", err)
		msg.Ack()
		return
	}
	payload := string(payloadJson)

	record := &model.SystemEvent{
		Type:       event.Type,
		Payload:    &payload,
		OccurredAt: event.OccurredAt,
	}

	if err := cs.eventRepo.Create(ctx, record); err != nil {
		log.Printf("[ERROR] Failed to persist event %s: %v", event.Type, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
