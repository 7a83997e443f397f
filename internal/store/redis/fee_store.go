package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/observability"
)

const (
	feeKeyPrefix    = "fee:"
	periodKeyPrefix = "fees:period:"

	fieldData      = "data"
	fieldChargeID  = "charge_id"
	fieldPeriodKey = "period_key"
	fieldIndexedAt = "indexed_at"

	pingTimeout = 5 * time.Second
)

// Config contains Redis connection settings. An empty Addr keeps fees in memory.
type Config struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"       envDefault:"0"`
	FeeTTL   time.Duration `env:"REDIS_FEE_TTL"  envDefault:"0s"`
}

// Enabled reports whether a Redis server is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}

// FeeStore implements domain.FeeRepository on Redis hashes. Each fee lives under
// fee:{id}; a sorted set per charge period orders fee IDs by creation time.
type FeeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeeStore connects to Redis and verifies the connection.
func NewFeeStore(cfg Config) (*FeeStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewFeeStoreWithClient(client, cfg.FeeTTL), nil
}

// NewFeeStoreWithClient creates a store on an existing client.
func NewFeeStoreWithClient(client *redis.Client, ttl time.Duration) *FeeStore {
	return &FeeStore{client: client, ttl: ttl}
}

// Save stores fee and adds it to its period index.
func (s *FeeStore) Save(ctx context.Context, fee *domain.Fee) error {
	if fee == nil || fee.ID == "" {
		return errors.New("fee id cannot be empty")
	}

	logger := observability.FromContext(ctx)

	data, err := json.Marshal(fee)
	if err != nil {
		return fmt.Errorf("failed to encode fee: %w", err)
	}

	key := feeKey(fee.ID)
	index := periodKey(fee.ChargeID, fee.PeriodKey)

	pipe := s.client.TxPipeline()

	pipe.HSet(ctx, key,
		fieldData, string(data),
		fieldChargeID, fee.ChargeID,
		fieldPeriodKey, fee.PeriodKey,
		fieldIndexedAt, time.Now().Unix(),
	)
	// NX keeps the original position when a fee is saved again.
	pipe.ZAddNX(ctx, index, redis.Z{Score: sortScore(fee), Member: fee.ID})

	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
		pipe.Expire(ctx, index, s.ttl)
	}

	if _, execErr := pipe.Exec(ctx); execErr != nil {
		logger.Error("fee save failed",
			observability.String("fee_id", fee.ID),
			observability.Error(execErr))
		return fmt.Errorf("failed to save fee: %w", execErr)
	}

	logger.Debug("fee saved",
		observability.String("fee_id", fee.ID),
		observability.String("period_key", fee.PeriodKey))
	return nil
}

// Get loads a fee by ID.
func (s *FeeStore) Get(ctx context.Context, feeID string) (*domain.Fee, error) {
	data, err := s.client.HGet(ctx, feeKey(feeID), fieldData).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFeeNotFound, feeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fee: %w", err)
	}

	return decodeFee(data)
}

// ListByPeriod returns the fees of a charge period, oldest first. Fees whose hash
// already expired are skipped.
func (s *FeeStore) ListByPeriod(ctx context.Context, chargeID, periodKeyValue string) ([]*domain.Fee, error) {
	ids, err := s.client.ZRange(ctx, periodKey(chargeID, periodKeyValue), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list period fees: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Fee{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.HGet(ctx, feeKey(id), fieldData))
	}
	if _, execErr := pipe.Exec(ctx); execErr != nil && !errors.Is(execErr, redis.Nil) {
		return nil, fmt.Errorf("failed to load period fees: %w", execErr)
	}

	return s.parseFees(ctx, ids, cmds), nil
}

// Close closes the underlying client.
func (s *FeeStore) Close() error {
	return s.client.Close()
}

func (s *FeeStore) parseFees(ctx context.Context, ids []string, cmds []*redis.StringCmd) []*domain.Fee {
	logger := observability.FromContext(ctx)

	fees := make([]*domain.Fee, 0, len(cmds))
	for i, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			logger.Warn("indexed fee missing",
				observability.String("fee_id", ids[i]),
				observability.Error(err))
			continue
		}

		fee, err := decodeFee(data)
		if err != nil {
			logger.Warn("indexed fee unreadable",
				observability.String("fee_id", ids[i]),
				observability.Error(err))
			continue
		}
		fees = append(fees, fee)
	}

	return fees
}

func decodeFee(data string) (*domain.Fee, error) {
	var fee domain.Fee
	if err := json.Unmarshal([]byte(data), &fee); err != nil {
		return nil, fmt.Errorf("failed to decode fee: %w", err)
	}
	return &fee, nil
}

func feeKey(feeID string) string {
	return feeKeyPrefix + feeID
}

func periodKey(chargeID, periodKeyValue string) string {
	return periodKeyPrefix + chargeID + "|" + periodKeyValue
}

// sortScore orders fees by creation time in microseconds, which float64 holds exactly.
func sortScore(fee *domain.Fee) float64 {
	return float64(fee.CreatedAt.UnixMicro())
}

var _ domain.FeeRepository = (*FeeStore)(nil)
