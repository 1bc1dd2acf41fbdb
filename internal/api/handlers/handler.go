package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
	"github.com/holiman/uint256"

	"github.com/babylonchain/staking-ledger/internal/config"
	"github.com/babylonchain/staking-ledger/internal/services"
	"github.com/babylonchain/staking-ledger/internal/types"
)

type Handler struct {
	config   *config.Config
	services *services.Services
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

// NewResult returns a successful result, with default status code 200
func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

func NewResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusOK}
}

// OperationResult is returned by state changing endpoints without a payload
// of their own.
type OperationResult struct {
	Sequence uint64 `json:"sequence"`
}

func (h *Handler) newOperationResult() *Result {
	return NewResult(OperationResult{Sequence: h.services.Sequence()})
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Handler, error) {
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}

// caller returns the account the gateway authenticated the request for.
func (h *Handler) caller(request *http.Request) (common.Address, *types.Error) {
	header := h.config.Server.CallerHeader
	value := request.Header.Get(header)
	if value == "" {
		return common.Address{}, types.NewErrorWithMsg(
			http.StatusUnauthorized, types.Unauthorized, header+" header is required",
		)
	}
	account, err := types.ParseAddress(value)
	if err != nil || account == (common.Address{}) {
		return common.Address{}, types.NewErrorWithMsg(
			http.StatusUnauthorized, types.Unauthorized, "invalid "+header+" header",
		)
	}
	return account, nil
}

func parseRequestPayload[T any](request *http.Request) (*T, *types.Error) {
	payload := new(T)
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	return payload, nil
}

func parseURLAddress(request *http.Request, name string) (common.Address, *types.Error) {
	return parseAddressField(name, chi.URLParam(request, name))
}

func parseURLUint64(request *http.Request, name string) (uint64, *types.Error) {
	value, err := strconv.ParseUint(chi.URLParam(request, name), 10, 64)
	if err != nil {
		return 0, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid "+name)
	}
	return value, nil
}

// parseQueryAddress accepts an empty value and returns it as is, so it can
// be used for optional filters.
func parseQueryAddress(request *http.Request, name string) (string, *types.Error) {
	value := request.URL.Query().Get(name)
	if value == "" {
		return "", nil
	}
	addr, err := parseAddressField(name, value)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

func parseAddressField(name, value string) (common.Address, *types.Error) {
	if value == "" {
		return common.Address{}, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, name+" is required")
	}
	addr, err := types.ParseAddress(value)
	if err != nil {
		return common.Address{}, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid "+name)
	}
	return addr, nil
}

// parseOptionalAddressField returns the zero address for an empty value.
func parseOptionalAddressField(name, value string) (common.Address, *types.Error) {
	if value == "" {
		return common.Address{}, nil
	}
	return parseAddressField(name, value)
}

func parseAddressList(name string, values []string) ([]common.Address, *types.Error) {
	out := make([]common.Address, 0, len(values))
	for _, v := range values {
		addr, err := parseAddressField(name, v)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}

func parseAmountField(name, value string) (*uint256.Int, *types.Error) {
	amount, err := types.ParseAmount(value)
	if err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid "+name)
	}
	return amount, nil
}
