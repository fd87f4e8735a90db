package strategy

import (
	"os"
	"strings"
	"sync"
)

// FileTokenStore keeps the bearer token in a local file so it survives
// restarts, mirroring the dashboard's persistent storage. An empty or
// missing file means no token.
type FileTokenStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileTokenStore creates a token store backed by path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Token reads the stored token. A missing file yields an empty token,
// not an error.
func (s *FileTokenStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Set writes the token.
func (s *FileTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the token file.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
