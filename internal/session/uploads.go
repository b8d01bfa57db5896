package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const cleanupInterval = time.Minute

type entry struct {
	upload    *Upload
	expiresAt time.Time
}

// Uploads keeps recent uploads in memory until their TTL runs out.
type Uploads struct {
	mu      sync.RWMutex
	uploads map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewUploads(ttl time.Duration) *Uploads {
	return &Uploads{
		uploads: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Add registers upload under a fresh ID and returns it.
func (u *Uploads) Add(upload *Upload) string {
	u.mu.Lock()
	defer u.mu.Unlock()

	upload.ID = uuid.New().String()
	u.uploads[upload.ID] = entry{
		upload:    upload,
		expiresAt: u.now().Add(u.ttl),
	}

	return upload.ID
}

func (u *Uploads) Get(id string) (*Upload, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	e, ok := u.uploads[id]
	if !ok || u.now().After(e.expiresAt) {
		return nil, false
	}

	return e.upload, true
}

// Replace swaps the upload stored under its ID and refreshes the expiry.
func (u *Uploads) Replace(upload *Upload) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.uploads[upload.ID]; !ok {
		return false
	}

	u.uploads[upload.ID] = entry{
		upload:    upload,
		expiresAt: u.now().Add(u.ttl),
	}

	return true
}

func (u *Uploads) Delete(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	delete(u.uploads, id)
}

// Run removes expired uploads every minute until ctx is done.
func (u *Uploads) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.removeExpired()
		}
	}
}

func (u *Uploads) removeExpired() {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	for id, e := range u.uploads {
		if now.After(e.expiresAt) {
			delete(u.uploads, id)
		}
	}
}
