package ondilo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// TokenStore is the interface for persisting token sets across process
// restarts. The library itself never persists anything; stores are opt-in
// caller tools wired through WithTokenStore.
type TokenStore interface {
	SaveToken(ctx context.Context, token *oauth2.Token) error
	LoadToken(ctx context.Context) (*oauth2.Token, error)
}

// FileTokenStore stores the token set in a JSON file.
type FileTokenStore struct {
	filepath string
	mu       sync.RWMutex
}

// NewFileTokenStore creates a new FileTokenStore.
func NewFileTokenStore(filepath string) *FileTokenStore {
	return &FileTokenStore{
		filepath: filepath,
	}
}

// SaveToken saves the token set to the file.
func (f *FileTokenStore) SaveToken(ctx context.Context, token *oauth2.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token == nil {
		return fmt.Errorf("ondilo: token cannot be nil")
	}

	// Ensure the directory exists
	dir := filepath.Dir(f.filepath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("ondilo: failed to create token directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("ondilo: failed to marshal token: %w", err)
	}

	// Write to a temporary file first, then rename for atomicity
	tmpFile := f.filepath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("ondilo: failed to write token file: %w", err)
	}

	if err := os.Rename(tmpFile, f.filepath); err != nil {
		// Clean up temp file on failure
		os.Remove(tmpFile)
		return fmt.Errorf("ondilo: failed to save token file: %w", err)
	}

	return nil
}

// LoadToken loads the token set from the file.
func (f *FileTokenStore) LoadToken(ctx context.Context) (*oauth2.Token, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("ondilo: token file not found: %w", err)
		}
		return nil, fmt.Errorf("ondilo: failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("ondilo: failed to parse token file: %w", err)
	}

	return &token, nil
}

// Delete removes the token file.
func (f *FileTokenStore) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.filepath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ondilo: failed to delete token file: %w", err)
	}
	return nil
}

// Exists checks if the token file exists.
func (f *FileTokenStore) Exists() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, err := os.Stat(f.filepath)
	return err == nil
}

// MemoryTokenStore stores the token set in memory (useful for testing).
type MemoryTokenStore struct {
	token *oauth2.Token
	mu    sync.RWMutex
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// SaveToken saves the token set to memory.
func (m *MemoryTokenStore) SaveToken(ctx context.Context, token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// LoadToken loads the token set from memory.
func (m *MemoryTokenStore) LoadToken(ctx context.Context) (*oauth2.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == nil {
		return nil, fmt.Errorf("ondilo: no token stored")
	}
	return m.token, nil
}

// Clear removes the stored token set.
func (m *MemoryTokenStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
}
