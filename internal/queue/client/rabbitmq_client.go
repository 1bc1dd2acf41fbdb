package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/babylonchain/staking-ledger/internal/config"
)

const (
	delayedQueueSuffix = "_delay"
	// retryAttemptsHeader carries the number of times a message went
	// through the delay queue.
	retryAttemptsHeader = "x-processing-attempts"
)

type RabbitMqClient struct {
	connection   *amqp091.Connection
	channel      *amqp091.Channel
	queueName    string
	delayedQueue string
	stopCh       chan struct{}
	stopOnce     sync.Once
	// publishMu serializes publishes and acks on the shared channel.
	publishMu sync.Mutex
}

func NewRabbitMqClient(cfg *config.QueueConfig, queueName string) (*RabbitMqClient, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)

	conn, err := amqp091.Dial(amqpURI)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	// One unacknowledged message at a time keeps ledger operations in
	// delivery order.
	if err := ch.Qos(1, 0, false); err != nil {
		conn.Close()
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-deleted
		false, // exclusive
		false, // no-wait
		amqp091.Table{"x-queue-type": cfg.QueueType},
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Re-queued messages wait in the delay queue until their TTL expires and
	// are dead lettered back to the main queue.
	delayedQueue := queueName + delayedQueueSuffix
	_, err = ch.QueueDeclare(
		delayedQueue,
		true,
		false,
		false,
		false,
		amqp091.Table{
			"x-queue-type":              cfg.QueueType,
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": queueName,
			"x-message-ttl":             (time.Duration(cfg.ReQueueDelayTime) * time.Second).Milliseconds(),
		},
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMqClient{
		connection:   conn,
		channel:      ch,
		queueName:    queueName,
		delayedQueue: delayedQueue,
		stopCh:       make(chan struct{}),
	}, nil
}

func (c *RabbitMqClient) ReceiveMessages() (<-chan QueueMessage, error) {
	deliveries, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	output := make(chan QueueMessage)
	go func() {
		defer close(output)
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				message := QueueMessage{
					Body:          string(d.Body),
					Receipt:       strconv.FormatUint(d.DeliveryTag, 10),
					RetryAttempts: retryAttempts(d.Headers),
				}
				select {
				case output <- message:
				case <-c.stopCh:
					return
				}
			case <-c.stopCh:
				return
			}
		}
	}()
	return output, nil
}

// DeleteMessage acknowledges the delivery identified by receipt.
func (c *RabbitMqClient) DeleteMessage(receipt string) error {
	deliveryTag, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		return err
	}
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	return c.channel.Ack(deliveryTag, false)
}

// ReQueueMessage sends the message to the delay queue with an incremented
// attempt counter and acknowledges the original delivery.
func (c *RabbitMqClient) ReQueueMessage(ctx context.Context, message QueueMessage) error {
	err := c.publish(ctx, c.delayedQueue, message.Body, amqp091.Table{
		retryAttemptsHeader: message.RetryAttempts + 1,
	})
	if err != nil {
		return err
	}
	return c.DeleteMessage(message.Receipt)
}

func (c *RabbitMqClient) SendMessage(ctx context.Context, messageBody string) error {
	return c.publish(ctx, c.queueName, messageBody, nil)
}

func (c *RabbitMqClient) publish(ctx context.Context, queueName, body string, headers amqp091.Table) error {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	return c.channel.PublishWithContext(
		ctx,
		"",        // default exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			Body:         []byte(body),
			Headers:      headers,
		},
	)
}

func (c *RabbitMqClient) Stop() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stopCh)
		if chErr := c.channel.Close(); chErr != nil && !errors.Is(chErr, amqp091.ErrClosed) {
			err = chErr
		}
		if connErr := c.connection.Close(); connErr != nil && !errors.Is(connErr, amqp091.ErrClosed) && err == nil {
			err = connErr
		}
	})
	return err
}

func (c *RabbitMqClient) GetQueueName() string {
	return c.queueName
}

func (c *RabbitMqClient) Ping() error {
	if c.connection.IsClosed() {
		return fmt.Errorf("rabbitmq connection of queue %s is closed", c.queueName)
	}
	return nil
}

func retryAttempts(headers amqp091.Table) int32 {
	switch v := headers[retryAttemptsHeader].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	default:
		return 0
	}
}
