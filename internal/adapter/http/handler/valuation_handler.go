package handler

import (
	"errors"
	"strings"
	"time"

	"address-valuation/internal/adapter/http/dto"
	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"
	"address-valuation/pkg/apperror"
	"address-valuation/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DefaultMaxBatchSize caps the number of addresses in one batch request.
const DefaultMaxBatchSize = 20

// ValuationHandler handles valuation endpoints.
type ValuationHandler struct {
	svc          ports.ValuationService
	maxBatchSize int
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(svc ports.ValuationService, maxBatchSize int) *ValuationHandler {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &ValuationHandler{svc: svc, maxBatchSize: maxBatchSize}
}

// GetValuation handles GET /api/v1/valuations/:chain/:address.
func (h *ValuationHandler) GetValuation(c *gin.Context) {
	chain, err := domain.ParseChainID(c.Param("chain"))
	if err != nil {
		response.Error(c, apperror.ErrUnsupportedChain(err))
		return
	}

	var q dto.ValuationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	cur, err := parseDisplayCurrency(q.Currency, q.Rate)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.svc.Resolve(c.Request.Context(), chain, c.Param("address"), ports.ResolveOptions{ForceRefresh: q.Refresh})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toValuationResponse(result, cur))
}

// BatchValuation handles POST /api/v1/valuations/batch.
func (h *ValuationHandler) BatchValuation(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if len(req.Items) > h.maxBatchSize {
		response.Error(c, apperror.Validation("too many items in batch").WithDetails(gin.H{"max_items": h.maxBatchSize}))
		return
	}
	cur, err := parseDisplayCurrency(req.Currency, req.Rate)
	if err != nil {
		response.Error(c, err)
		return
	}

	reqs := make([]ports.ResolveRequest, len(req.Items))
	for i, item := range req.Items {
		// chain_id binding has already accepted the value.
		chain, _ := domain.ParseChainID(item.Chain)
		reqs[i] = ports.ResolveRequest{Chain: chain, Address: item.Address}
	}

	items := h.svc.ResolveMany(c.Request.Context(), reqs, ports.ResolveOptions{ForceRefresh: req.Refresh})

	resp := dto.BatchResponse{Items: make([]dto.BatchItemResponse, len(items))}
	for i, item := range items {
		out := dto.BatchItemResponse{
			Chain:   string(item.Request.Chain),
			Address: item.Request.Address,
		}
		if item.Err != nil {
			out.Error = toItemError(item.Err)
			resp.Failed++
		} else {
			v := toValuationResponse(item.Result, cur)
			out.Result = &v
			resp.Succeeded++
		}
		resp.Items[i] = out
	}

	response.OK(c, resp)
}

// displayCurrency is a requested local currency and its USD rate.
type displayCurrency struct {
	code string
	rate decimal.Decimal
}

// parseDisplayCurrency returns nil when no local currency was requested.
func parseDisplayCurrency(code, rate string) (*displayCurrency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	rate = strings.TrimSpace(rate)

	switch {
	case code == "" && rate == "":
		return nil, nil
	case code == "":
		return nil, apperror.Validation("currency is required when rate is given")
	case code == "USD" && rate == "":
		return &displayCurrency{code: code, rate: decimal.NewFromInt(1)}, nil
	case rate == "":
		return nil, apperror.Validation("rate is required for currency " + code)
	}

	r, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, apperror.Validation("rate must be a decimal number")
	}
	if _, err := domain.ConvertCurrency(decimal.Zero, r); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	return &displayCurrency{code: code, rate: r}, nil
}

func toValuationResponse(res *domain.ValuationResult, cur *displayCurrency) dto.ValuationResponse {
	out := dto.ValuationResponse{
		Chain:          string(res.Balance.Address.Chain()),
		Address:        res.Balance.Address.Value(),
		Balance:        toBalanceResponse(res.Balance),
		StalePriceUsed: res.StalePriceUsed,
	}
	if res.Price != nil {
		p := toPriceResponse(*res.Price, res.StalePriceUsed)
		out.Price = &p
	}
	if res.ValueUSD != nil {
		v := domain.RoundFiat(*res.ValueUSD).StringFixed(2)
		out.ValueUSD = &v
	}
	if cur != nil {
		// parseDisplayCurrency has already rejected non-positive rates.
		if local, ok, err := res.ValueIn(cur.rate); err == nil && ok {
			out.ValueLocal = &dto.LocalValueResponse{
				Currency: cur.code,
				Rate:     cur.rate.String(),
				Amount:   domain.RoundFiat(local).StringFixed(2),
			}
		}
	}
	if res.PriceErr != nil {
		out.PriceError = res.PriceErr.Error()
	}
	return out
}

func toBalanceResponse(b *domain.BalanceQuote) dto.BalanceResponse {
	out := dto.BalanceResponse{
		Asset:     b.AssetSymbol,
		Amount:    b.FormatDisplay(),
		Decimals:  b.Decimals,
		Source:    b.SourceProvider,
		FetchedAt: formatTime(b.FetchedAt),
	}
	if b.AmountBaseUnits != nil {
		out.BaseUnits = b.AmountBaseUnits.String()
	}
	for _, t := range b.Tokens {
		tr := dto.TokenResponse{
			Contract: t.Contract,
			Name:     t.Name,
			Symbol:   t.Symbol,
			Decimals: t.Decimals,
		}
		if t.RawAmount != nil {
			tr.RawAmount = t.RawAmount.String()
		}
		if t.ValueUSD != nil {
			v := domain.RoundFiat(*t.ValueUSD).StringFixed(2)
			tr.ValueUSD = &v
		}
		out.Tokens = append(out.Tokens, tr)
	}
	return out
}

func toPriceResponse(p domain.PriceSnapshot, stale bool) dto.PriceResponse {
	return dto.PriceResponse{
		Asset:            p.Asset,
		USD:              p.USDPrice.String(),
		Change24hPercent: p.USD24hChangePercent.StringFixed(2),
		Source:           p.SourceProvider,
		FetchedAt:        formatTime(p.FetchedAt),
		Stale:            stale,
	}
}

func toItemError(err error) *dto.ItemError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return &dto.ItemError{ErrorCode: appErr.Code, Message: appErr.Message, Details: appErr.Details}
	}
	internal := apperror.InternalError(err)
	return &dto.ItemError{ErrorCode: internal.Code, Message: internal.Message}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
