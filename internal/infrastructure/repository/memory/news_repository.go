package memory

import (
	"context"
	"sync"
)

const newsFeedCap = 200

// NewsRepository keeps a bounded rolling feed of league headlines.
type NewsRepository struct {
	mu    sync.RWMutex
	lines []string
}

func NewNewsRepository() *NewsRepository {
	return &NewsRepository{}
}

func (r *NewsRepository) Publish(_ context.Context, line string) error {
	if line == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, line)
	if len(r.lines) > newsFeedCap {
		r.lines = r.lines[len(r.lines)-newsFeedCap:]
	}

	return nil
}

// Latest returns up to n headlines, newest first.
func (r *NewsRepository) Latest(_ context.Context, n int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || n > len(r.lines) {
		n = len(r.lines)
	}

	out := make([]string, 0, n)
	for i := len(r.lines) - 1; i >= len(r.lines)-n; i-- {
		out = append(out, r.lines[i])
	}

	return out, nil
}
