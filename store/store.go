package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Client is one registered sender, keyed by phone.
type Client struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Allowed bool   `json:"allowed"`
}

type document struct {
	Clients map[string]Client `json:"clients"`
}

var ErrClientNotFound = errors.New("client not found")

// Store is a write-through client registry backed by a single JSON file.
// One mutex serializes the message path and the admin panel path.
type Store struct {
	path string

	mu      sync.Mutex
	clients map[string]Client
}

// Open loads the registry from path. A missing or empty file starts an
// empty registry; unreadable JSON is an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, clients: map[string]Client{}}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return s, nil
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if doc.Clients != nil {
		s.clients = doc.Clients
	}
	return s, nil
}

// Upsert registers phone on first contact (allowed by default) and
// refreshes the display name on every later contact. The allowed flag is
// only ever changed by ToggleAuthorization; a blocked client does not get
// re-allowed by messaging again.
func (s *Store) Upsert(phone, name string) error {
	if strings.TrimSpace(phone) == "" {
		return errors.New("phone is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[phone]
	if !ok {
		c = Client{Phone: phone, Allowed: true}
	}
	c.Name = name
	s.clients[phone] = c
	return s.persistLocked()
}

// IsAuthorized fails closed: unknown phone reads as not authorized.
func (s *Store) IsAuthorized(phone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[phone]
	return ok && c.Allowed
}

// List returns a snapshot of all registered clients.
func (s *Store) List() (map[string]Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Client, len(s.clients))
	for phone, c := range s.clients {
		out[phone] = c
	}
	return out, nil
}

// ToggleAuthorization flips the allowed flag for phone, leaving the name
// untouched. Returns ErrClientNotFound for a phone never seen before; no
// record is created on failure.
func (s *Store) ToggleAuthorization(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[phone]
	if !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, phone)
	}
	c.Allowed = !c.Allowed
	s.clients[phone] = c
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(document{Clients: s.clients}, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
