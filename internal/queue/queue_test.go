package queue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/internal/config"
	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/mocks"
	"github.com/babylonchain/staking-ledger/internal/queue/client"
	"github.com/babylonchain/staking-ledger/internal/types"
)

type recordingStore struct {
	saved []string
	err   error
}

func (s *recordingStore) SaveUnprocessableMessages(_ context.Context, messageBody, _, _ string) error {
	s.saved = append(s.saved, messageBody)
	return s.err
}

func failingHandler(status int) func(context.Context, string) *types.Error {
	return func(context.Context, string) *types.Error {
		return types.NewErrorWithMsg(status, types.InternalServiceError, "boom")
	}
}

func newQueueClient(t *testing.T, name string) *mocks.QueueClient {
	c := mocks.NewQueueClient(t)
	c.On("GetQueueName").Return(name).Maybe()
	return c
}

func TestProcessMessageDeletesOnSuccess(t *testing.T) {
	c := newQueueClient(t, client.DepositQueueName)
	c.On("DeleteMessage", "7").Return(nil).Once()

	var received string
	handler := func(ctx context.Context, body string) *types.Error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		received = body
		return nil
	}
	processMessage(c, handler, &recordingStore{}, 3, time.Second, client.QueueMessage{Body: "{}", Receipt: "7"})
	assert.Equal(t, "{}", received)
}

func TestProcessMessageRequeuesOnFailure(t *testing.T) {
	c := newQueueClient(t, client.RewardQueueName)
	message := client.QueueMessage{Body: "{}", Receipt: "1", RetryAttempts: 2}
	c.On("ReQueueMessage", mock.Anything, message).Return(nil).Once()
	store := &recordingStore{}

	processMessage(c, failingHandler(http.StatusInternalServerError), store, 3, time.Second, message)
	assert.Empty(t, store.saved)
	c.AssertNotCalled(t, "DeleteMessage", mock.Anything)
}

func TestProcessMessageStoresAfterMaxRetries(t *testing.T) {
	c := newQueueClient(t, client.SlashingQueueName)
	message := client.QueueMessage{Body: `{"event_type":3}`, Receipt: "9", RetryAttempts: 3}
	c.On("DeleteMessage", "9").Return(nil).Once()
	store := &recordingStore{}

	processMessage(c, failingHandler(http.StatusConflict), store, 3, time.Second, message)
	assert.Equal(t, []string{message.Body}, store.saved)
}

func TestProcessMessageKeepsMessageWhenStoreFails(t *testing.T) {
	c := newQueueClient(t, client.SlashingQueueName)
	message := client.QueueMessage{Body: "{}", Receipt: "9", RetryAttempts: 5}
	store := &recordingStore{err: errors.New("db down")}

	processMessage(c, failingHandler(http.StatusInternalServerError), store, 3, time.Second, message)
	c.AssertNotCalled(t, "DeleteMessage", mock.Anything)
	c.AssertNotCalled(t, "ReQueueMessage", mock.Anything, mock.Anything)
}

func TestStartQueueMessageProcessing(t *testing.T) {
	c := newQueueClient(t, client.DepositQueueName)
	messages := make(chan client.QueueMessage, 2)
	messages <- client.QueueMessage{Body: "a", Receipt: "1"}
	messages <- client.QueueMessage{Body: "b", Receipt: "2"}
	close(messages)
	c.On("ReceiveMessages").Return((<-chan client.QueueMessage)(messages), nil)

	deleted := make(chan string, 2)
	c.On("DeleteMessage", mock.Anything).Run(func(args mock.Arguments) {
		deleted <- args.String(0)
	}).Return(nil)

	handler := func(context.Context, string) *types.Error { return nil }
	require.NoError(t, startQueueMessageProcessing(c, handler, &recordingStore{}, 3, time.Second))

	for _, want := range []string{"1", "2"} {
		select {
		case got := <-deleted:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("message %s was not processed", want)
		}
	}
}

func TestPublishLedgerEvents(t *testing.T) {
	publisher := newQueueClient(t, client.LedgerEventQueueName)
	q := NewWithClients(&config.QueueConfig{}, nil, nil, nil, nil, publisher)

	var bodies []string
	publisher.On("SendMessage", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		bodies = append(bodies, args.String(1))
	}).Return(nil).Twice()

	events := []ledger.Event{
		{Type: ledger.EventStaked, Validator: common.HexToAddress("0x1a"), Amount: "10"},
		{Type: ledger.EventUnstakeRequested, RequestID: 3},
	}
	require.NoError(t, q.PublishLedgerEvents(context.Background(), events))
	require.Len(t, bodies, 2)

	var message client.LedgerEventMessage
	require.NoError(t, json.Unmarshal([]byte(bodies[1]), &message))
	assert.Equal(t, client.LedgerEventType, message.EventType)
	assert.Equal(t, uint64(3), message.Event.RequestID)

	publisher.On("SendMessage", mock.Anything, mock.Anything).Return(errors.New("closed")).Once()
	assert.Error(t, q.PublishLedgerEvents(context.Background(), events[:1]))
}

func TestIsConnectionHealthy(t *testing.T) {
	deposit := newQueueClient(t, client.DepositQueueName)
	reward := newQueueClient(t, client.RewardQueueName)
	slashing := newQueueClient(t, client.SlashingQueueName)
	ledgerEvents := newQueueClient(t, client.LedgerEventQueueName)
	q := NewWithClients(&config.QueueConfig{}, nil, deposit, reward, slashing, ledgerEvents)

	for _, c := range []*mocks.QueueClient{deposit, reward, slashing} {
		c.On("Ping").Return(nil)
	}
	ledgerEvents.On("Ping").Return(nil).Once()
	assert.NoError(t, q.IsConnectionHealthy())

	ledgerEvents.On("Ping").Return(errors.New("closed"))
	err := q.IsConnectionHealthy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), client.LedgerEventQueueName)
}

func TestQueueFor(t *testing.T) {
	deposit := newQueueClient(t, client.DepositQueueName)
	q := NewWithClients(&config.QueueConfig{}, nil, deposit, nil, nil, nil)

	c, err := q.QueueFor(client.DepositEventType)
	require.NoError(t, err)
	assert.Equal(t, client.DepositQueueName, c.GetQueueName())

	_, err = q.QueueFor(client.LedgerEventType)
	assert.Error(t, err)
}
