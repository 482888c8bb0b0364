package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	tu "github.com/tutorbook/tutorbook/internal/testutil"
	"github.com/tutorbook/tutorbook/pkg/logger"
	"github.com/tutorbook/tutorbook/pkg/retry"
)

const addrEnv = "TUTORBOOK_TEST_REDIS_ADDR"

func TestConfig_DerivedKeys(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "tutorbook:addressbook:fingerprint", cfg.FingerprintKey())
	assert.Equal(t, "tutorbook:addressbook:changes", cfg.ChangesChannel())
}

func TestStore_Location(t *testing.T) {
	cfg := Config{Addr: "cache:6380", DB: 2, Key: "books:main"}
	s := newStore(redis.NewClient(&redis.Options{Addr: cfg.Addr}), cfg, logger.Nop())
	defer s.Close()

	assert.Equal(t, "redis://cache:6380/2/books:main", s.Location())
}

func TestNewStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewStore(ctx, Config{Addr: "127.0.0.1:1", Key: "k", DialTimeout: 10 * time.Millisecond}, nil)
	assert.ErrorIs(t, err, ErrConnection)
}

type serverReply string

func (e serverReply) Error() string { return string(e) }
func (serverReply) RedisError()     {}

func TestClassifyPingError(t *testing.T) {
	wrongPass := fmt.Errorf("ping: %w", serverReply("WRONGPASS invalid username-password pair"))
	assert.True(t, retry.IsPermanent(classifyPingError(wrongPass)))

	refused := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
	assert.False(t, retry.IsPermanent(classifyPingError(refused)))
	assert.NoError(t, classifyPingError(nil))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv(addrEnv)
	if addr == "" {
		t.Skipf("%s not set", addrEnv)
	}
	cfg := DefaultConfig()
	cfg.Addr = addr
	cfg.Key = "tutorbook:test:" + uuid.NewString()

	s, err := NewStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.client.Del(context.Background(), cfg.Key, cfg.FingerprintKey()).Err()
		_ = s.Close()
	})
	return s
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrStoreNotFound)
}

func TestStore_SaveLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	book := tu.TypicalAddressBook()

	require.NoError(t, s.Save(ctx, book))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, book.Equal(got))

	require.NoError(t, s.Save(ctx, addressbook.New()))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.PersonCount())
}

func TestStore_PublishesChanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sub := s.Subscribe(ctx)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, tu.TypicalAddressBook()))

	select {
	case msg := <-sub.Channel():
		fp, err := s.client.Get(ctx, s.config.FingerprintKey()).Result()
		require.NoError(t, err)
		assert.Equal(t, fp, msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification received")
	}
}

func TestStore_CorruptDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.client.Set(ctx, s.config.Key, `{"persons":[],"lessons":[],"extra":1}`, 0).Err())

	_, err := s.Load(ctx)
	assert.Error(t, err)
}

func TestStore_Watch(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	other, err := NewStore(ctx, s.config, nil)
	require.NoError(t, err)
	defer other.Close()

	got := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(fp string) {
			got <- fp
			cancel()
		})
	}()

	require.Eventually(t, func() bool {
		n, err := other.client.PubSubNumSub(ctx, s.config.ChangesChannel()).Result()
		return err == nil && n[s.config.ChangesChannel()] > 0
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, other.Save(context.Background(), tu.TypicalAddressBook()))
	select {
	case fp := <-got:
		assert.NotEmpty(t, fp)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification received")
	}
	assert.ErrorIs(t, <-done, context.Canceled)
}
