package rediscache

import (
	"context"
	"encoding/json"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces rental entries so GetAll can enumerate them with a
// pattern scan without touching unrelated keys.
const keyPrefix = "rental:"

const scanBatch = 100

// RentalCache mirrors rental records in Redis, one JSON string per booking
// number. It is strictly best-effort: a backend failure degrades to a miss
// or a logged no-op, never to a caller-visible error, so a cache outage can
// slow lifecycle operations down but cannot fail or corrupt them.
type RentalCache struct {
	client *redis.Client
}

func NewRentalCache(client *redis.Client) repository.RentalCache {
	return &RentalCache{client: client}
}

func (c *RentalCache) Get(ctx context.Context, bookingNumber string) (*domain.Rental, bool) {
	payload, err := c.client.Get(ctx, key(bookingNumber)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("rental cache read failed", "booking_number", bookingNumber, "error", err)
		}
		return nil, false
	}
	rental, err := decode([]byte(payload))
	if err != nil {
		logger.Warn("rental cache entry undecodable", "booking_number", bookingNumber, "error", err)
		return nil, false
	}
	return rental, true
}

func (c *RentalCache) GetAll(ctx context.Context) []domain.Rental {
	var rentals []domain.Rental

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		payload, err := c.client.Get(ctx, k).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				logger.Warn("rental cache read failed during scan", "key", k, "error", err)
			}
			continue
		}
		rental, err := decode([]byte(payload))
		if err != nil {
			// Corrupt entries are skipped, never abort the whole scan.
			logger.Warn("skipping undecodable rental cache entry", "key", k, "error", err)
			continue
		}
		rentals = append(rentals, *rental)
	}
	if err := iter.Err(); err != nil {
		logger.Warn("rental cache scan failed", "error", err)
	}
	return rentals
}

func (c *RentalCache) Put(ctx context.Context, rental *domain.Rental) {
	payload, err := encode(rental)
	if err != nil {
		logger.Warn("rental cache encode failed", "booking_number", rental.BookingNumber, "error", err)
		return
	}
	if err := c.client.Set(ctx, key(rental.BookingNumber), payload, 0).Err(); err != nil {
		logger.Warn("rental cache write failed", "booking_number", rental.BookingNumber, "error", err)
	}
}

func (c *RentalCache) Invalidate(ctx context.Context, bookingNumber string) {
	if err := c.client.Del(ctx, key(bookingNumber)).Err(); err != nil {
		logger.Warn("rental cache invalidation failed", "booking_number", bookingNumber, "error", err)
	}
}

func key(bookingNumber string) string {
	return keyPrefix + bookingNumber
}

func encode(rental *domain.Rental) ([]byte, error) {
	return json.Marshal(rental)
}

func decode(payload []byte) (*domain.Rental, error) {
	var rental domain.Rental
	if err := json.Unmarshal(payload, &rental); err != nil {
		return nil, err
	}
	return &rental, nil
}
