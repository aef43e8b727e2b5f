package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pressly/imgedit"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// Store keeps edit sessions between requests. Update runs fn on the current
// session and saves the result atomically with respect to other updates of
// the same session.
type Store interface {
	Create(ctx context.Context, sess *imgedit.Session) (string, error)
	Get(ctx context.Context, id string) (*imgedit.Session, error)
	Update(ctx context.Context, id string, fn func(*imgedit.Session) error) (*imgedit.Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

func newSessionID() string {
	return uuid.NewString()
}

func encodeSession(sess *imgedit.Session) ([]byte, error) {
	return json.Marshal(sess)
}

func decodeSession(b []byte) (*imgedit.Session, error) {
	sess := &imgedit.Session{}
	if err := json.Unmarshal(b, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// MemStore is an in-process Store. Sessions are kept encoded so callers
// never share a session value.
type MemStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[string][]byte)}
}

func (m *MemStore) Create(ctx context.Context, sess *imgedit.Session) (string, error) {
	b, err := encodeSession(sess)
	if err != nil {
		return "", err
	}
	id := newSessionID()

	m.mu.Lock()
	m.sessions[id] = b
	m.mu.Unlock()
	return id, nil
}

func (m *MemStore) Get(ctx context.Context, id string) (*imgedit.Session, error) {
	m.mu.Lock()
	b, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(b)
}

func (m *MemStore) Update(ctx context.Context, id string, fn func(*imgedit.Session) error) (*imgedit.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess, err := decodeSession(b)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if b, err = encodeSession(sess); err != nil {
		return nil, err
	}
	m.sessions[id] = b
	return sess, nil
}

func (m *MemStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MemStore) Close() error {
	return nil
}
