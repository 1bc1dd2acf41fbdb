package client

import (
	"context"

	"github.com/babylonchain/staking-ledger/internal/config"
)

type QueueMessage struct {
	Body    string
	Receipt string
	// RetryAttempts counts how many times the message was re-queued after a
	// failed processing.
	RetryAttempts int32
}

// A common interface for queue clients regardless if it's a SQS, RabbitMQ, etc.
type QueueClient interface {
	SendMessage(ctx context.Context, messageBody string) error
	ReceiveMessages() (<-chan QueueMessage, error)
	DeleteMessage(receipt string) error
	ReQueueMessage(ctx context.Context, message QueueMessage) error
	Stop() error
	GetQueueName() string
	Ping() error
}

func NewQueueClient(cfg *config.QueueConfig, queueName string) (QueueClient, error) {
	return NewRabbitMqClient(cfg, queueName)
}
