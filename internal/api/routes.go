package api

import (
	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/babylonchain/staking-ledger/docs"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.Get("/v1/params", registerHandler(handlers.GetParams))
	r.Get("/v1/collaterals", registerHandler(handlers.GetCollaterals))
	r.Get("/v1/collaterals/{id}", registerHandler(handlers.GetCollateral))
	r.Get("/v1/validators", registerHandler(handlers.GetValidators))
	r.Get("/v1/validators/{id}", registerHandler(handlers.GetValidator))
	r.Get("/v1/validators/{id}/pools/{collateral}", registerHandler(handlers.GetPool))
	r.Get("/v1/validators/{id}/pools/{collateral}/delegators", registerHandler(handlers.GetPoolDelegators))
	r.Get("/v1/validators/{id}/pools/{collateral}/delegators/{delegator}", registerHandler(handlers.GetDelegator))
	r.Get("/v1/validators/{id}/withdrawals/{withdrawal_id}", registerHandler(handlers.GetWithdrawal))
	r.Get("/v1/rewards/{token}", registerHandler(handlers.GetRewardInfo))
	r.Get("/v1/accounts/{account}/balances", registerHandler(handlers.GetBalances))
	r.Get("/v1/accounts/{account}/balances/{token}", registerHandler(handlers.GetBalance))
	r.Get("/v1/prices/{token}", registerHandler(handlers.GetPrice))
	r.Get("/v1/events", registerHandler(handlers.GetLedgerEvents))

	r.Post("/v1/stake", registerHandler(handlers.Stake))
	r.Post("/v1/unstake/request", registerHandler(handlers.RequestUnstake))
	r.Post("/v1/unstake/execute", registerHandler(handlers.ExecuteUnstake))
	r.Post("/v1/unstake/cancel", registerHandler(handlers.CancelUnstake))
	r.Post("/v1/rewards", registerHandler(handlers.SendRewards))

	r.Post("/v1/validators/{id}/rewards/exchange", registerHandler(handlers.ExchangeValidatorRewards))
	r.Put("/v1/validators/{id}/profit-sharing", registerHandler(handlers.SetProfitSharing))

	r.Route("/v1/admin", func(r chi.Router) {
		r.Post("/collaterals", registerHandler(handlers.AddCollateral))
		r.Post("/collaterals/{id}/status", registerHandler(handlers.SetCollateralStatus))
		r.Put("/collaterals/{id}/max-stake", registerHandler(handlers.SetCollateralMaxStake))
		r.Post("/validators", registerHandler(handlers.AddValidator))
		r.Post("/validators/{id}/status", registerHandler(handlers.SetValidatorStatus))
		r.Put("/validators/{id}/weight", registerHandler(handlers.SetRewardWeight))
		r.Post("/validators/{id}/delegator-actions", registerHandler(handlers.SetDelegatorActionPaused))
		r.Post("/withdrawals/pause", registerHandler(handlers.PauseWithdrawals))
		r.Post("/rewards/distribute", registerHandler(handlers.DistributeRewards))
		r.Post("/slash/collateral", registerHandler(handlers.SlashCollateral))
		r.Post("/slash/rewards", registerHandler(handlers.SlashRewards))
		r.Post("/slash/withdrawals", registerHandler(handlers.SlashWithdrawals))
		r.Post("/liquidate", registerHandler(handlers.Liquidate))
		r.Post("/liquidate/delegator", registerHandler(handlers.LiquidateDelegator))
		r.Post("/treasury/withdraw", registerHandler(handlers.WithdrawTreasury))
		r.Post("/pause", registerHandler(handlers.SetPaused))
		r.Put("/params", registerHandler(handlers.UpdateParams))
		r.Put("/prices/{token}", registerHandler(handlers.SetPrice))
		r.Get("/roles/{role}", registerHandler(handlers.GetRoleMembers))
		r.Post("/roles/{role}/grant", registerHandler(handlers.GrantRole))
		r.Post("/roles/{role}/revoke", registerHandler(handlers.RevokeRole))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
