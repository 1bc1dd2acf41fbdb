package client

import (
	"github.com/babylonchain/staking-ledger/internal/ledger"
)

const (
	DepositQueueName     string = "deposit_queue"
	RewardQueueName      string = "reward_queue"
	SlashingQueueName    string = "slashing_queue"
	LedgerEventQueueName string = "ledger_event_queue"
)

const (
	DepositEventType          EventType = 1
	RewardEventType           EventType = 2
	SlashingIncidentEventType EventType = 3
	LedgerEventType           EventType = 4
)

type EventType int

// DepositEvent reports tokens that arrived in an account outside of the
// ledger, e.g. observed by a chain watcher.
type DepositEvent struct {
	EventType EventType `json:"event_type"` // always 1
	DepositID string    `json:"deposit_id"`
	Account   string    `json:"account"`
	Token     string    `json:"token"`
	Amount    string    `json:"amount"`
}

type RewardEvent struct {
	EventType  EventType `json:"event_type"` // always 2
	Token      string    `json:"token"`
	Amount     string    `json:"amount"`
	Distribute bool      `json:"distribute"`
}

type SlashingIncidentEvent struct {
	EventType        EventType `json:"event_type"` // always 3
	Validator        string    `json:"validator"`
	ProblemTimestamp uint64    `json:"problem_timestamp"`
	// SlashPercent is an 18 decimal fraction, "500000000000000000" is 50%.
	SlashPercent string   `json:"slash_percent"`
	LiquidateBPS uint64   `json:"liquidate_bps"`
	Collaterals  []string `json:"collaterals,omitempty"`
}

// LedgerEventMessage is published for every committed ledger event.
type LedgerEventMessage struct {
	EventType EventType    `json:"event_type"` // always 4
	Event     ledger.Event `json:"event"`
}

func NewDepositEvent(depositID, account, token, amount string) DepositEvent {
	return DepositEvent{
		EventType: DepositEventType,
		DepositID: depositID,
		Account:   account,
		Token:     token,
		Amount:    amount,
	}
}

func NewRewardEvent(token, amount string, distribute bool) RewardEvent {
	return RewardEvent{
		EventType:  RewardEventType,
		Token:      token,
		Amount:     amount,
		Distribute: distribute,
	}
}

func NewLedgerEventMessage(event ledger.Event) LedgerEventMessage {
	return LedgerEventMessage{
		EventType: LedgerEventType,
		Event:     event,
	}
}
