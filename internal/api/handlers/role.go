package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"

	"github.com/babylonchain/staking-ledger/internal/ledger"
	"github.com/babylonchain/staking-ledger/internal/types"
)

type RolePayload struct {
	Account string `json:"account"`
}

// GetRoleMembers godoc
// @Summary List role members
// @Produce json
// @Param role path string true "Role" Enums(admin, slasher)
// @Success 200 {object} PublicResponse[[]string]{array} "Member addresses"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/admin/roles/{role} [get]
func (h *Handler) GetRoleMembers(request *http.Request) (*Result, *types.Error) {
	role, err := parseRole(request)
	if err != nil {
		return nil, err
	}
	return NewResult(h.services.RoleMembers(role)), nil
}

// GrantRole godoc
// @Summary Grant a role
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param role path string true "Role" Enums(admin, slasher)
// @Param payload body RolePayload true "Account"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Router /v1/admin/roles/{role}/grant [post]
func (h *Handler) GrantRole(request *http.Request) (*Result, *types.Error) {
	caller, role, account, err := h.parseRoleChange(request)
	if err != nil {
		return nil, err
	}
	if err := h.services.GrantRole(request.Context(), caller, role, account); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

// RevokeRole godoc
// @Summary Revoke a role
// @Description The last admin cannot be revoked.
// @Accept json
// @Produce json
// @Param X-Account header string true "Admin address"
// @Param role path string true "Role" Enums(admin, slasher)
// @Param payload body RolePayload true "Account"
// @Success 200 {object} PublicResponse[OperationResult] "Persisted sequence"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Forbidden"
// @Router /v1/admin/roles/{role}/revoke [post]
func (h *Handler) RevokeRole(request *http.Request) (*Result, *types.Error) {
	caller, role, account, err := h.parseRoleChange(request)
	if err != nil {
		return nil, err
	}
	if err := h.services.RevokeRole(request.Context(), caller, role, account); err != nil {
		return nil, err
	}
	return h.newOperationResult(), nil
}

func (h *Handler) parseRoleChange(
	request *http.Request,
) (caller common.Address, role ledger.Role, account common.Address, err *types.Error) {
	if caller, err = h.caller(request); err != nil {
		return
	}
	if role, err = parseRole(request); err != nil {
		return
	}
	payload, err := parseRequestPayload[RolePayload](request)
	if err != nil {
		return
	}
	account, err = parseAddressField("account", payload.Account)
	return
}

func parseRole(request *http.Request) (ledger.Role, *types.Error) {
	role, err := ledger.ParseRole(chi.URLParam(request, "role"))
	if err != nil {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "unknown role")
	}
	return role, nil
}
