package history

import "github.com/gin-contrib/sessions"

// Backend is the persistence surface behind the history store: one blob,
// read and written whole. Swapping in MemoryBackend keeps the store fully
// testable without a browser session.
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Clear() error
}

// SessionBackend persists the serialized log under a single key in the
// browser session cookie. Writes are last-writer-wins across tabs sharing
// the session.
type SessionBackend struct {
	session sessions.Session
	key     string
}

// NewSessionBackend wraps the current request's session.
func NewSessionBackend(session sessions.Session, key string) *SessionBackend {
	return &SessionBackend{session: session, key: key}
}

func (b *SessionBackend) Read() ([]byte, error) {
	v := b.session.Get(b.key)
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		// A foreign value under our key reads as an absent log.
		return nil, nil
	}
	return []byte(s), nil
}

func (b *SessionBackend) Write(data []byte) error {
	b.session.Set(b.key, string(data))
	return b.session.Save()
}

func (b *SessionBackend) Clear() error {
	b.session.Delete(b.key)
	return b.session.Save()
}

// MemoryBackend is an in-process Backend for tests and for running without
// cookie sessions.
type MemoryBackend struct {
	data    []byte
	present bool
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Seed pre-loads the backend with a raw blob, valid or not. Lets tests
// exercise recovery from malformed stored state.
func (b *MemoryBackend) Seed(data []byte) {
	b.data = append([]byte(nil), data...)
	b.present = true
}

func (b *MemoryBackend) Read() ([]byte, error) {
	if !b.present {
		return nil, nil
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) Write(data []byte) error {
	b.data = append([]byte(nil), data...)
	b.present = true
	return nil
}

func (b *MemoryBackend) Clear() error {
	b.data = nil
	b.present = false
	return nil
}
