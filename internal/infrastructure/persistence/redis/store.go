// Package redis stores the address book as one JSON document in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/adapted"
	"github.com/tutorbook/tutorbook/pkg/logger"
	"github.com/tutorbook/tutorbook/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the server address in "host:port" format.
	Addr string

	// Password is the authentication password (empty if no auth).
	Password string

	// DB is the database number (0-15).
	DB int

	// Key holds the document. Related keys are derived from it.
	Key string

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration
}

// DefaultConfig returns a local development configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        "localhost:6379",
		Key:         "tutorbook:addressbook",
		DialTimeout: 5 * time.Second,
	}
}

// FingerprintKey holds the fingerprint of the stored document.
func (c Config) FingerprintKey() string {
	return c.Key + ":fingerprint"
}

// ChangesChannel receives the new fingerprint after every write.
func (c Config) ChangesChannel() string {
	return c.Key + ":changes"
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrConnection is returned when Redis cannot be reached.
	ErrConnection = errors.New("redis: connection failed")

	// ErrConflict is returned when another writer changed the document mid-save.
	ErrConflict = errors.New("redis: document modified concurrently")
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store implements addressbook.Storage. The document and its fingerprint are
// written together in MULTI/EXEC under WATCH.
type Store struct {
	client *redis.Client
	config Config
	log    *logger.Logger
}

// NewStore connects to Redis, retrying the initial ping.
func NewStore(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	onRetry := func(attempt int, err error, delay time.Duration) {
		log.Warn("redis not reachable, retrying",
			logger.Int("attempt", attempt), logger.Err(err), logger.Duration("delay", delay))
	}
	err := retry.Do(ctx, retry.StorePolicy(), func(ctx context.Context) error {
		return classifyPingError(client.Ping(ctx).Err())
	}, onRetry)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return newStore(client, cfg, log), nil
}

// classifyPingError marks server replies, such as WRONGPASS or NOAUTH, as
// permanent; only transport failures are retried.
func classifyPingError(err error) error {
	var reply redis.Error
	if errors.As(err, &reply) {
		return retry.Permanent(err)
	}
	return err
}

func newStore(client *redis.Client, cfg Config, log *logger.Logger) *Store {
	return &Store{
		client: client,
		config: cfg,
		log:    log.With(logger.Component("redis"), logger.StoreLocation(cfg.Addr+"/"+cfg.Key)),
	}
}

// Location returns the server address and document key.
func (s *Store) Location() string {
	return fmt.Sprintf("redis://%s/%d/%s", s.config.Addr, s.config.DB, s.config.Key)
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Load reads and validates the stored document.
func (s *Store) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	data, err := s.client.Get(ctx, s.config.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", s.config.Key, err)
	}

	doc, err := adapted.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	book, err := doc.ToModel()
	if err != nil {
		s.log.Warn("stored address book is invalid", logger.Err(err))
		return nil, fmt.Errorf("redis: %w", err)
	}
	return book, nil
}

// Save writes the document unless the stored fingerprint already matches.
func (s *Store) Save(ctx context.Context, book *addressbook.AddressBook) error {
	doc := adapted.FromModel(book)
	fp, err := doc.Fingerprint()
	if err != nil {
		return fmt.Errorf("redis: fingerprint: %w", err)
	}
	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("redis: encode: %w", err)
	}

	written := false
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.config.FingerprintKey()).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current == fp {
			exists, err := tx.Exists(ctx, s.config.Key).Result()
			if err != nil {
				return err
			}
			if exists == 1 {
				return nil
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.config.Key, data, 0)
			pipe.Set(ctx, s.config.FingerprintKey(), fp, 0)
			pipe.Publish(ctx, s.config.ChangesChannel(), fp)
			return nil
		})
		if err == nil {
			written = true
		}
		return err
	}

	err = s.client.Watch(ctx, txf, s.config.Key, s.config.FingerprintKey())
	if errors.Is(err, redis.TxFailedErr) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("redis: save: %w", err)
	}

	if !written {
		s.log.Debug("address book unchanged, skipping write")
		return nil
	}
	s.log.Info("address book saved",
		logger.Int("persons", len(doc.Persons)),
		logger.Int("lessons", len(doc.Lessons)))
	return nil
}

// Subscribe returns a subscription that receives the fingerprint of every
// saved document. The caller must close it.
func (s *Store) Subscribe(ctx context.Context) *redis.PubSub {
	return s.client.Subscribe(ctx, s.config.ChangesChannel())
}

// Watch calls fn with the fingerprint of every document saved by any writer
// until ctx is done or the subscription closes.
func (s *Store) Watch(ctx context.Context, fn func(fingerprint string)) error {
	sub := s.Subscribe(ctx)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}
