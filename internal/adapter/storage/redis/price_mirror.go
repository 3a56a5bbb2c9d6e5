package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"address-valuation/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const priceKeyPrefix = "price:snapshot:"

// saveIfNewer writes the snapshot unless the stored one is newer.
// KEYS[1] = hash key, ARGV[1] = JSON blob, ARGV[2] = fetched_at in unix millis.
var saveIfNewer = goredis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'fetched_at')
if cur and tonumber(cur) > tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'data', ARGV[1], 'fetched_at', ARGV[2])
return 1
`)

// PriceMirror implements ports.PriceMirror using one Redis hash per asset.
// Entries carry no TTL; freshness is judged by the in-memory cache.
type PriceMirror struct {
	client goredis.UniversalClient
	prefix string
}

// NewPriceMirror creates a new Redis-backed price mirror.
func NewPriceMirror(client goredis.UniversalClient) *PriceMirror {
	return &PriceMirror{
		client: client,
		prefix: priceKeyPrefix,
	}
}

// Save stores snapshot as the last good price for its asset.
// An older snapshot never replaces a newer one.
func (m *PriceMirror) Save(ctx context.Context, snapshot domain.PriceSnapshot) error {
	asset := domain.NormalizeAsset(snapshot.Asset)
	if asset == "" {
		return errors.New("redis price mirror save: empty asset")
	}
	snapshot.Asset = asset

	blob, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding price snapshot: %w", err)
	}

	fetchedAt := strconv.FormatInt(snapshot.FetchedAt.UnixMilli(), 10)
	if err := saveIfNewer.Run(ctx, m.client, []string{m.key(asset)}, string(blob), fetchedAt).Err(); err != nil {
		return fmt.Errorf("redis price mirror save: %w", err)
	}
	return nil
}

// Load returns the mirrored snapshot for asset, or nil, nil if none is stored.
func (m *PriceMirror) Load(ctx context.Context, asset string) (*domain.PriceSnapshot, error) {
	blob, err := m.client.HGet(ctx, m.key(domain.NormalizeAsset(asset)), "data").Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis price mirror load: %w", err)
	}

	var snap domain.PriceSnapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("decoding mirrored %s snapshot: %w", asset, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("mirrored %s snapshot: %w", asset, err)
	}
	return &snap, nil
}

func (m *PriceMirror) key(asset string) string {
	return m.prefix + asset
}
