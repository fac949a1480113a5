package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// minGenerationTTL bounds how long a generation counter outlives its last
// bump; it must exceed any ledger read.
const minGenerationTTL = time.Hour

// setIfGeneration writes the entry only when the generation read before the
// ledger query is still current.
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// OccupancyCache keeps the booked intervals of a barber/date in Redis for a
// short TTL. It is only a read accelerator; bookings are always re-checked
// against the database.
type OccupancyCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	genTTL time.Duration
	log    *zap.Logger
}

func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewOccupancyCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *OccupancyCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	genTTL := 10 * ttl
	if genTTL < minGenerationTTL {
		genTTL = minGenerationTTL
	}
	return &OccupancyCache{rdb: rdb, ttl: ttl, genTTL: genTTL, log: log}
}

func Key(barberID uint, date string) string {
	return fmt.Sprintf("occupancy:%d:%s", barberID, date)
}

func GenerationKey(barberID uint, date string) string {
	return fmt.Sprintf("occupancy:gen:%d:%s", barberID, date)
}

// Get returns the cached intervals. On a miss it returns the current
// generation; a negative generation means Redis failed and Set is skipped.
func (c *OccupancyCache) Get(ctx context.Context, barberID uint, date string) ([]domain.BookedInterval, int64, bool) {
	vals, err := c.rdb.MGet(ctx, Key(barberID, date), GenerationKey(barberID, date)).Result()
	if err != nil {
		c.log.Warn("occupancy cache get failed", zap.Error(err))
		return nil, -1, false
	}

	gen, err := parseGeneration(vals[1])
	if err != nil {
		c.log.Warn("occupancy generation corrupt", zap.String("key", GenerationKey(barberID, date)), zap.Error(err))
		return nil, -1, false
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, false
	}

	var booked []domain.BookedInterval
	if err := json.Unmarshal([]byte(raw), &booked); err != nil {
		c.log.Warn("occupancy cache entry corrupt", zap.String("key", Key(barberID, date)), zap.Error(err))
		return nil, gen, false
	}
	return booked, gen, true
}

func (c *OccupancyCache) Set(ctx context.Context, barberID uint, date string, gen int64, booked []domain.BookedInterval) {
	if gen < 0 {
		return
	}
	raw, err := json.Marshal(booked)
	if err != nil {
		return
	}

	err = setIfGeneration.Run(ctx, c.rdb,
		[]string{Key(barberID, date), GenerationKey(barberID, date)},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		c.log.Warn("occupancy cache set failed", zap.Error(err))
	}
}

// Invalidate drops the entries and bumps their generations so in-flight
// reads cannot write stale data back.
func (c *OccupancyCache) Invalidate(ctx context.Context, barberID uint, dates ...string) {
	if len(dates) == 0 {
		return
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, d := range dates {
			genKey := GenerationKey(barberID, d)
			pipe.Incr(ctx, genKey)
			pipe.PExpire(ctx, genKey, c.genTTL)
			pipe.Del(ctx, Key(barberID, d))
		}
		return nil
	})
	if err != nil {
		c.log.Warn("occupancy cache invalidate failed", zap.Error(err))
	}
}

func parseGeneration(v any) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected generation type %T", v)
	}
	return strconv.ParseInt(s, 10, 64)
}

var _ domain.OccupancyCache = (*OccupancyCache)(nil)
