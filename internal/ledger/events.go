package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// EventType names a committed ledger state change.
type EventType string

const (
	EventCollateralAdded         EventType = "CollateralAdded"
	EventCollateralStatusChanged EventType = "CollateralStatusChanged"
	EventCollateralCapChanged    EventType = "CollateralCapChanged"
	EventValidatorAdded          EventType = "ValidatorAdded"
	EventValidatorStatusChanged  EventType = "ValidatorStatusChanged"
	EventRewardWeightChanged     EventType = "RewardWeightChanged"
	EventProfitSharingChanged    EventType = "ProfitSharingChanged"
	EventDelegatorActionPaused   EventType = "DelegatorActionPausedChanged"
	EventParamsChanged           EventType = "ParamsChanged"
	EventStaked                  EventType = "Staked"
	EventUnstakeRequested        EventType = "UnstakeRequested"
	EventUnstakeExecuted         EventType = "UnstakeExecuted"
	EventUnstakeCancelled        EventType = "UnstakeCancelled"
	EventUnstakePauseChanged     EventType = "UnstakePauseChanged"
	EventRewardsReceived         EventType = "RewardsReceived"
	EventRewardsDistributed      EventType = "RewardsDistributed"
	EventValidatorRewarded       EventType = "ValidatorRewarded"
	EventValidatorRewardsClaimed EventType = "ValidatorRewardsExchanged"
	EventCollateralSlashed       EventType = "CollateralSlashed"
	EventRewardsSlashed          EventType = "RewardsSlashed"
	EventLiquidated              EventType = "Liquidated"
	EventDelegatorLiquidated     EventType = "DelegatorLiquidated"
	EventUnstakeRequestsSlashed  EventType = "UnstakeRequestsSlashed"
	EventTreasuryWithdrawn       EventType = "SlashingTreasuryWithdrawn"
)

// Event is emitted for every committed state change. Amounts are decimal
// strings so events serialize losslessly.
type Event struct {
	Type       EventType      `json:"type"`
	Validator  common.Address `json:"validator"`
	Collateral common.Address `json:"collateral"`
	Account    common.Address `json:"account"`
	RequestID  uint64         `json:"request_id"`
	Amount     string         `json:"amount"`
	Shares     string         `json:"shares"`
	Value      uint64         `json:"value"`
	Param      string         `json:"param,omitempty"`
	Time       uint64         `json:"time"`
}

// EventSink receives the events of each committed operation, in commit order.
type EventSink func(ctx context.Context, events []Event)

func dec(x *uint256.Int) string {
	if x == nil {
		return "0"
	}
	return x.Dec()
}
