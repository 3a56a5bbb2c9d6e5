package handler

import (
	"slices"
	"sort"
	"strings"

	"address-valuation/internal/adapter/http/dto"
	"address-valuation/internal/adapter/http/middleware"
	"address-valuation/internal/core/domain"
	"address-valuation/internal/core/ports"
	"address-valuation/pkg/apperror"
	"address-valuation/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PriceHandler handles price endpoints.
type PriceHandler struct {
	svc       ports.ValuationService
	refresher ports.PriceRefresher
	tracked   []string
	log       zerolog.Logger
}

// NewPriceHandler creates a new PriceHandler. tracked is used when a
// request names no assets.
func NewPriceHandler(svc ports.ValuationService, refresher ports.PriceRefresher, tracked []string, log zerolog.Logger) *PriceHandler {
	return &PriceHandler{svc: svc, refresher: refresher, tracked: normalizeAssetList(tracked), log: log}
}

// GetPrices handles GET /api/v1/prices.
func (h *PriceHandler) GetPrices(c *gin.Context) {
	var q dto.PriceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	assets := normalizeAssetList(strings.Split(q.Assets, ","))
	if len(assets) == 0 {
		assets = h.tracked
	}

	quotes, err := h.svc.Prices(c.Request.Context(), assets, ports.ResolveOptions{ForceRefresh: q.Refresh})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.PriceListResponse{Prices: make([]dto.PriceResponse, 0, len(quotes))}
	for _, a := range assets {
		quote, ok := quotes[a]
		if !ok {
			resp.Missing = append(resp.Missing, a)
			continue
		}
		resp.Prices = append(resp.Prices, toPriceResponse(quote.Snapshot, quote.Stale))
	}

	response.OK(c, resp)
}

// RefreshPrices handles POST /api/v1/admin/prices/refresh.
func (h *PriceHandler) RefreshPrices(c *gin.Context) {
	snaps, err := h.refresher.RefreshNow(c.Request.Context())
	if err != nil && len(snaps) == 0 {
		response.Error(c, apperror.ErrPriceUnavailable(err))
		return
	}

	h.log.Info().
		Str("subject", c.GetString(middleware.CtxSubject)).
		Int("refreshed", len(snaps)).
		Msg("operator price refresh")

	resp := dto.RefreshResponse{Refreshed: make([]dto.PriceResponse, 0, len(snaps))}
	for _, a := range h.tracked {
		snap, ok := snaps[a]
		if !ok {
			resp.Failed = append(resp.Failed, a)
			continue
		}
		resp.Refreshed = append(resp.Refreshed, toPriceResponse(snap, false))
	}
	// Assets refreshed outside the tracked list.
	var extra []string
	for a := range snaps {
		if !slices.Contains(h.tracked, a) {
			extra = append(extra, a)
		}
	}
	sort.Strings(extra)
	for _, a := range extra {
		resp.Refreshed = append(resp.Refreshed, toPriceResponse(snaps[a], false))
	}

	response.OK(c, resp)
}

// normalizeAssetList normalizes and dedupes symbols, keeping order.
func normalizeAssetList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = domain.NormalizeAsset(a)
		if a == "" || slices.Contains(out, a) {
			continue
		}
		out = append(out, a)
	}
	return out
}
