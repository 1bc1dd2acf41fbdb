package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/internal/config"
	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger/internal/queue/client"
	"github.com/babylonchain/staking-ledger/internal/queue/handlers"
	"github.com/babylonchain/staking-ledger/internal/services"
	"github.com/babylonchain/staking-ledger/internal/types"
)

// UnprocessableMessageStore keeps messages that exhausted their retries.
type UnprocessableMessageStore interface {
	SaveUnprocessableMessages(ctx context.Context, messageBody, receipt, queueName string) error
}

type Queues struct {
	DepositQueueClient     client.QueueClient
	RewardQueueClient      client.QueueClient
	SlashingQueueClient    client.QueueClient
	LedgerEventQueueClient client.QueueClient
	Handlers               *handlers.QueueHandler
	store                  UnprocessableMessageStore
	processingTimeout      time.Duration
	maxRetryAttempts       int32
}

func New(cfg *config.QueueConfig, service *services.Services) (*Queues, error) {
	names := []string{
		client.DepositQueueName, client.RewardQueueName,
		client.SlashingQueueName, client.LedgerEventQueueName,
	}
	queueClients := make([]client.QueueClient, 0, len(names))
	for _, name := range names {
		queueClient, err := client.NewQueueClient(cfg, name)
		if err != nil {
			for _, c := range queueClients {
				c.Stop()
			}
			return nil, fmt.Errorf("error while creating %s client: %w", name, err)
		}
		queueClients = append(queueClients, queueClient)
	}

	return NewWithClients(
		cfg, service, queueClients[0], queueClients[1], queueClients[2], queueClients[3],
	), nil
}

// NewWithClients assembles the queues on already connected clients.
func NewWithClients(
	cfg *config.QueueConfig, service *services.Services,
	deposit, reward, slashing, ledgerEvents client.QueueClient,
) *Queues {
	q := &Queues{
		DepositQueueClient:     deposit,
		RewardQueueClient:      reward,
		SlashingQueueClient:    slashing,
		LedgerEventQueueClient: ledgerEvents,
		Handlers:               handlers.NewQueueHandler(service),
		processingTimeout:      time.Duration(cfg.QueueProcessingTimeout) * time.Second,
		maxRetryAttempts:       cfg.MsgMaxRetryAttempts,
	}
	if service != nil {
		q.store = service
	}
	return q
}

// Start all message processing
func (q *Queues) StartReceivingMessages() error {
	consumers := []struct {
		client  client.QueueClient
		handler handlers.MessageHandler
	}{
		{q.DepositQueueClient, q.Handlers.DepositHandler},
		{q.RewardQueueClient, q.Handlers.RewardHandler},
		{q.SlashingQueueClient, q.Handlers.SlashingIncidentHandler},
	}
	for _, c := range consumers {
		err := startQueueMessageProcessing(
			c.client, c.handler, q.store, q.maxRetryAttempts, q.processingTimeout,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Turn off all message processing
func (q *Queues) StopReceivingMessages() {
	for _, c := range q.clients() {
		if err := c.Stop(); err != nil {
			log.Error().Err(err).Str("queueName", c.GetQueueName()).Msg("error while stopping queue")
		}
	}
}

// IsConnectionHealthy pings every queue connection.
func (q *Queues) IsConnectionHealthy() error {
	var unhealthy []string
	for _, c := range q.clients() {
		if err := c.Ping(); err != nil {
			unhealthy = append(unhealthy, c.GetQueueName())
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("queues %v are not healthy", unhealthy)
	}
	return nil
}

// PublishLedgerEvents sends every event to the ledger event queue in order,
// stopping at the first failure.
func (q *Queues) PublishLedgerEvents(ctx context.Context, events []ledger.Event) error {
	for _, event := range events {
		body, err := json.Marshal(client.NewLedgerEventMessage(event))
		if err != nil {
			return err
		}
		if err := q.LedgerEventQueueClient.SendMessage(ctx, string(body)); err != nil {
			metrics.RecordQueueOperationFailure(q.LedgerEventQueueClient.GetQueueName(), "sendMessage")
			return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
		}
	}
	return nil
}

// QueueFor returns the inbound queue consuming events of eventType.
func (q *Queues) QueueFor(eventType client.EventType) (client.QueueClient, error) {
	switch eventType {
	case client.DepositEventType:
		return q.DepositQueueClient, nil
	case client.RewardEventType:
		return q.RewardQueueClient, nil
	case client.SlashingIncidentEventType:
		return q.SlashingQueueClient, nil
	default:
		return nil, fmt.Errorf("unknown event type: %v", eventType)
	}
}

func (q *Queues) clients() []client.QueueClient {
	return []client.QueueClient{
		q.DepositQueueClient, q.RewardQueueClient, q.SlashingQueueClient, q.LedgerEventQueueClient,
	}
}

func startQueueMessageProcessing(
	queueClient client.QueueClient, handler handlers.MessageHandler,
	store UnprocessableMessageStore, maxRetryAttempts int32, timeout time.Duration,
) error {
	queueName := queueClient.GetQueueName()
	messagesChan, err := queueClient.ReceiveMessages()
	if err != nil {
		log.Error().Err(err).Str("queueName", queueName).Msg("error setting up message channel from queue")
		return err
	}

	go func() {
		for message := range messagesChan {
			processMessage(queueClient, handler, store, maxRetryAttempts, timeout, message)
		}
		log.Info().Str("queueName", queueName).Msg("stopped receiving messages")
	}()
	return nil
}

func processMessage(
	queueClient client.QueueClient, handler handlers.MessageHandler,
	store UnprocessableMessageStore, maxRetryAttempts int32, timeout time.Duration,
	message client.QueueMessage,
) {
	queueName := queueClient.GetQueueName()
	logger := log.With().
		Str("queueName", queueName).
		Str("traceId", uuid.NewString()).
		Int32("retryAttempts", message.RetryAttempts).
		Logger()
	// For each message, create a new context with a deadline or timeout
	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), timeout)
	defer cancel()

	if err := handler(ctx, message.Body); err != nil {
		recordErrorLog(logger, err)
		if message.RetryAttempts >= maxRetryAttempts {
			logger.Error().Msg("exceeded retry attempts, message will be stored as unprocessable")
			if store == nil {
				metrics.RecordQueueOperationFailure(queueName, "saveUnprocessableMessage")
				return
			}
			if saveErr := store.SaveUnprocessableMessages(ctx, message.Body, message.Receipt, queueName); saveErr != nil {
				logger.Error().Err(saveErr).Msg("error while saving unprocessable message")
				metrics.RecordQueueOperationFailure(queueName, "saveUnprocessableMessage")
				return
			}
		} else {
			if reQueueErr := queueClient.ReQueueMessage(ctx, message); reQueueErr != nil {
				logger.Error().Err(reQueueErr).Msg("error while requeuing message")
				metrics.RecordQueueOperationFailure(queueName, "reQueueMessage")
			}
			return
		}
	}

	if delErr := queueClient.DeleteMessage(message.Receipt); delErr != nil {
		logger.Error().Err(delErr).Msg("error while deleting message from queue")
		metrics.RecordQueueOperationFailure(queueName, "deleteMessage")
	}
}

func recordErrorLog(logger zerolog.Logger, err *types.Error) {
	if err.StatusCode >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("event processing failed with 5xx error")
	} else {
		logger.Warn().Err(err).Msg("event processing failed with 4xx error")
	}
}
