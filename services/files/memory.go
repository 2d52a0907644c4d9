package filesvc

import (
	"context"
	"io"
	"io/ioutil"
	"sync"

	"github.com/bookiown/backend/core"
)

// MemoryStorage keeps uploads in memory. Used in tests and local dev.
type MemoryStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

var _ core.FileStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Objects: make(map[string][]byte)}
}

func (svc *MemoryStorage) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}
	svc.mu.Lock()
	svc.Objects[key] = data
	svc.mu.Unlock()
	return "memory://" + key, nil
}
