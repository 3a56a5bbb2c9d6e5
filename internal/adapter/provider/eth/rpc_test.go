package eth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params []any           `json:"params"`
}

// rpcStub answers eth_getBalance with result, echoing the request id.
func rpcStub(t *testing.T, result string, rpcErr bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) || !assert.Len(t, req.Params, 2) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		assert.Equal(t, "eth_getBalance", req.Method)
		addr, _ := req.Params[0].(string)
		assert.Equal(t, strings.ToLower(testAddress), strings.ToLower(addr))
		assert.Equal(t, "latest", req.Params[1])

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr {
			resp["error"] = map[string]any{"code": -32000, "message": "header not found"}
		} else {
			resp["result"] = result
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRPCProvider_FetchBalance(t *testing.T) {
	srv := rpcStub(t, "0xde0b6b3a7640000", false) // 1 ETH

	p, err := NewRPCProvider(context.Background(), srv.URL)
	require.NoError(t, err)
	defer p.Close()

	q, err := p.FetchBalance(context.Background(), testAddr(t))
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", q.AmountBaseUnits.String())
	assert.Equal(t, "1.000000000000000000", q.FormatDisplay())
	assert.Equal(t, "eth-rpc", p.Name())
}

func TestRPCProvider_Error(t *testing.T) {
	srv := rpcStub(t, "", true)

	p, err := NewRPCProvider(context.Background(), srv.URL)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.FetchBalance(context.Background(), testAddr(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header not found")
}

func TestNewRPCProvider_BadURL(t *testing.T) {
	_, err := NewRPCProvider(context.Background(), "ftp://example.invalid")
	assert.Error(t, err)
}
