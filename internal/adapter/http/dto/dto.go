package dto

// ValuationQuery holds the query parameters of a single valuation.
type ValuationQuery struct {
	Currency string `form:"currency" binding:"omitempty,currency_code"`
	Rate     string `form:"rate" binding:"omitempty,max=32"`
	Refresh  bool   `form:"refresh"`
}

// BatchItemRequest identifies one address in a batch valuation.
type BatchItemRequest struct {
	Chain   string `json:"chain" binding:"required,chain_id"`
	Address string `json:"address" binding:"required,max=128"`
}

// BatchRequest is the request body for batch valuation.
type BatchRequest struct {
	Items    []BatchItemRequest `json:"items" binding:"required,min=1,dive"`
	Currency string             `json:"currency" binding:"omitempty,currency_code"`
	Rate     string             `json:"rate" binding:"omitempty,max=32"`
	Refresh  bool               `json:"refresh"`
}

// PriceQuery holds the query parameters of a price lookup.
type PriceQuery struct {
	Assets  string `form:"assets" binding:"omitempty,max=256"`
	Refresh bool   `form:"refresh"`
}

// TokenResponse is a token seen in an address's transfer history.
type TokenResponse struct {
	Contract  string `json:"contract"`
	Name      string `json:"name,omitempty"`
	Symbol    string `json:"symbol"`
	Decimals  int32  `json:"decimals"`
	RawAmount string `json:"raw_amount,omitempty"`
	// ValueUSD is null when the token has no known price.
	ValueUSD *string `json:"value_usd"`
}

// BalanceResponse is an address balance. Amounts are decimal strings.
type BalanceResponse struct {
	Asset     string          `json:"asset"`
	Amount    string          `json:"amount"`
	BaseUnits string          `json:"base_units"`
	Decimals  int32           `json:"decimals"`
	Source    string          `json:"source"`
	FetchedAt string          `json:"fetched_at"`
	Tokens    []TokenResponse `json:"tokens,omitempty"`
}

// PriceResponse is a USD price observation.
type PriceResponse struct {
	Asset            string `json:"asset"`
	USD              string `json:"usd"`
	Change24hPercent string `json:"change_24h_percent"`
	Source           string `json:"source"`
	FetchedAt        string `json:"fetched_at"`
	Stale            bool   `json:"stale"`
}

// LocalValueResponse is the value converted into a display currency.
type LocalValueResponse struct {
	Currency string `json:"currency"`
	Rate     string `json:"rate"`
	Amount   string `json:"amount"`
}

// ValuationResponse is the response body for a valuation.
type ValuationResponse struct {
	Chain          string              `json:"chain"`
	Address        string              `json:"address"`
	Balance        BalanceResponse     `json:"balance"`
	Price          *PriceResponse      `json:"price"`
	ValueUSD       *string             `json:"value_usd"`
	ValueLocal     *LocalValueResponse `json:"value_local,omitempty"`
	StalePriceUsed bool                `json:"stale_price_used"`
	PriceError     string              `json:"price_error,omitempty"`
}

// ItemError is the error of one batch entry.
type ItemError struct {
	ErrorCode string      `json:"error_code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// BatchItemResponse is the outcome of one batch entry.
type BatchItemResponse struct {
	Chain   string             `json:"chain"`
	Address string             `json:"address"`
	Result  *ValuationResponse `json:"result,omitempty"`
	Error   *ItemError         `json:"error,omitempty"`
}

// BatchResponse wraps batch results in request order.
type BatchResponse struct {
	Items     []BatchItemResponse `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// PriceListResponse is the response body for a price lookup.
type PriceListResponse struct {
	Prices  []PriceResponse `json:"prices"`
	Missing []string        `json:"missing,omitempty"`
}

// RefreshResponse is the response body for a forced price refresh.
type RefreshResponse struct {
	Refreshed []PriceResponse `json:"refreshed"`
	Failed    []string        `json:"failed,omitempty"`
}
