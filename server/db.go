package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/imgedit"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "imgedit:session:"
	maxUpdateAttempts = 10
)

var (
	ErrDBConflict = errors.New("DB: too many concurrent updates")
)

// RedisStore keeps sessions in redis, each under its own key with a ttl that
// is refreshed on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to uri, either a redis:// url or a bare host:port.
func NewRedisStore(uri string, ttl time.Duration) (*RedisStore, error) {
	var opts *redis.Options
	if strings.Contains(uri, "://") {
		var err error
		opts, err = redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("DB: invalid redis uri: %w", err)
		}
	} else {
		opts = &redis.Options{Addr: uri}
	}
	opts.PoolSize = 64
	opts.ConnMaxIdleTime = 300 * time.Second

	return &RedisStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (db *RedisStore) Ping(ctx context.Context) error {
	return db.client.Ping(ctx).Err()
}

func (db *RedisStore) Close() error {
	return db.client.Close()
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (db *RedisStore) Create(ctx context.Context, sess *imgedit.Session) (string, error) {
	b, err := encodeSession(sess)
	if err != nil {
		return "", err
	}
	id := newSessionID()
	if err := db.client.Set(ctx, sessionKey(id), b, db.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (db *RedisStore) Get(ctx context.Context, id string) (*imgedit.Session, error) {
	b, err := db.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(b)
}

// Update uses optimistic locking: the key is watched while fn runs and the
// write is retried if another client changed the session meanwhile.
func (db *RedisStore) Update(ctx context.Context, id string, fn func(*imgedit.Session) error) (*imgedit.Session, error) {
	key := sessionKey(id)
	var sess *imgedit.Session

	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		if sess, err = decodeSession(b); err != nil {
			return err
		}
		if err := fn(sess); err != nil {
			return err
		}
		if b, err = encodeSession(sess); err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, db.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := db.client.Watch(ctx, txf, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return sess, nil
	}
	return nil, ErrDBConflict
}

func (db *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := db.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
