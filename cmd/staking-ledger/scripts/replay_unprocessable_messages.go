package scripts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/db/model"
	"github.com/babylonchain/staking-ledger/internal/queue/client"
)

type GenericEvent struct {
	EventType client.EventType `json:"event_type"`
}

// UnprocessableMessageStore is the part of the database the replay needs.
type UnprocessableMessageStore interface {
	FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error)
	DeleteUnprocessableMessage(ctx context.Context, Receipt interface{}) error
}

// QueueResolver maps an event type to the queue consuming it.
type QueueResolver interface {
	QueueFor(eventType client.EventType) (client.QueueClient, error)
}

// ReplayUnprocessableMessages sends every stored message back to its inbound
// queue and removes it from the store. It stops at the first failure, the
// remaining messages stay stored.
func ReplayUnprocessableMessages(ctx context.Context, queues QueueResolver, db UnprocessableMessageStore) error {
	unprocessableMessages, err := db.FindUnprocessableMessages(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve unprocessable messages: %w", err)
	}

	messageCount := len(unprocessableMessages)
	fmt.Printf("There are %d unprocessable messages.\n", messageCount)
	if messageCount == 0 {
		return errors.New("no unprocessable messages to replay")
	}

	for _, msg := range unprocessableMessages {
		var genericEvent GenericEvent
		if err := json.Unmarshal([]byte(msg.MessageBody), &genericEvent); err != nil {
			return fmt.Errorf("failed to unmarshal event message: %w", err)
		}

		queueClient, err := queues.QueueFor(genericEvent.EventType)
		if err != nil {
			return err
		}
		if err := queueClient.SendMessage(ctx, msg.MessageBody); err != nil {
			return fmt.Errorf("failed to send message to %s: %w", queueClient.GetQueueName(), err)
		}

		if err := db.DeleteUnprocessableMessage(ctx, msg.Receipt); err != nil {
			return fmt.Errorf("failed to delete unprocessable message: %w", err)
		}
	}

	log.Info().Int("messages", messageCount).Msg("Reprocessing of unprocessable messages completed.")
	return nil
}
