package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/application/sales"
)

var _ sales.ReceiptCache = (*RedisReceiptCache)(nil)

const receiptTTL = 24 * time.Hour

// RedisReceiptCache caché de recibos fiscales sobre Redis. El recibo es
// determinista, así que la entrada nunca se invalida, solo expira.
// Cualquier fallo de Redis degrada a fallo de caché, nunca de la petición.
type RedisReceiptCache struct {
	client *redis.Client
}

// NewRedisReceiptCache construye el caché con su propio cliente.
func NewRedisReceiptCache(addr, password string, db int) *RedisReceiptCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisReceiptCache{client: client}
}

// Ping verifica conectividad.
func (c *RedisReceiptCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisReceiptCache) Close() error {
	return c.client.Close()
}

// GetFiscal recupera el recibo cacheado de la venta, si existe.
func (c *RedisReceiptCache) GetFiscal(ctx context.Context, saleID string) (*dto.FiscalResponse, bool) {
	val, err := c.client.Get(ctx, receiptKey(saleID)).Result()
	if err != nil {
		return nil, false
	}
	var resp dto.FiscalResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// SetFiscal guarda el recibo de la venta con TTL.
func (c *RedisReceiptCache) SetFiscal(ctx context.Context, saleID string, resp *dto.FiscalResponse) {
	if resp == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, receiptKey(saleID), payload, receiptTTL).Err()
}

func receiptKey(saleID string) string {
	return "fiscal:" + saleID
}
