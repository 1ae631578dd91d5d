package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"hotel-dashboard-server/floorplan"
)

// Draft is a property under construction in the creation wizard. It is pure
// form state: nothing is durable until the draft is approved and serialized
// into a models.Property. One editor session owns a draft at a time, so
// there is no conflict handling on writes.
type Draft struct {
	ID        string            `json:"id"`
	UserID    uint              `json:"userID"`
	Name      string            `json:"name"`
	Blocks    []floorplan.Block `json:"blocks"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// DraftTTL is how long an untouched draft survives. Redis enforces it via
// key expiry; the in-memory fallback is swept on a schedule.
const DraftTTL = 24 * time.Hour

// ErrDraftNotFound is returned for unknown or expired draft ids.
var ErrDraftNotFound = errors.New("draft not found")

// Drafts is the process-wide draft store, set up in main alongside DB/Redis.
var Drafts *DraftStore

// DraftStore keeps wizard drafts in Redis as JSON documents under
// "draft:<id>". When Redis was never initialized (local development, tests)
// it degrades to an in-process map guarded by a mutex.
type DraftStore struct {
	mu     sync.RWMutex
	local  map[string]localDraft
	useRed bool
}

type localDraft struct {
	data      []byte
	expiresAt time.Time
}

// InitializeDrafts wires the draft store. Call after InitializeRedis; redis
// being down is not fatal, the store just stays in-process.
func InitializeDrafts() *DraftStore {
	Drafts = NewDraftStore(Redis != nil)
	return Drafts
}

func NewDraftStore(useRedis bool) *DraftStore {
	return &DraftStore{
		local:  map[string]localDraft{},
		useRed: useRedis,
	}
}

func draftKey(id string) string { return "draft:" + id }

// Put saves the draft, refreshing its TTL.
func (s *DraftStore) Put(ctx context.Context, draft *Draft) error {
	draft.UpdatedAt = time.Now()
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	if s.useRed {
		return Redis.Set(ctx, draftKey(draft.ID), raw, DraftTTL).Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.local[draft.ID] = localDraft{data: raw, expiresAt: time.Now().Add(DraftTTL)}
	return nil
}

// Get loads a draft by id.
func (s *DraftStore) Get(ctx context.Context, id string) (*Draft, error) {
	var raw []byte
	if s.useRed {
		val, err := Redis.Get(ctx, draftKey(id)).Bytes()
		if err != nil {
			return nil, ErrDraftNotFound
		}
		raw = val
	} else {
		s.mu.RLock()
		entry, ok := s.local[id]
		s.mu.RUnlock()
		if !ok || time.Now().After(entry.expiresAt) {
			return nil, ErrDraftNotFound
		}
		raw = entry.data
	}
	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// List returns every live draft owned by userID, most recently updated
// first. Redis is walked with SCAN over the draft: prefix; the fallback
// store iterates its map, skipping expired entries.
func (s *DraftStore) List(ctx context.Context, userID uint) ([]*Draft, error) {
	var raws [][]byte
	if s.useRed {
		var cursor uint64
		for {
			keys, next, err := Redis.Scan(ctx, cursor, draftKey("*"), 100).Result()
			if err != nil {
				return nil, err
			}
			for _, key := range keys {
				val, getErr := Redis.Get(ctx, key).Bytes()
				if getErr != nil {
					continue // expired between SCAN and GET
				}
				raws = append(raws, val)
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	} else {
		now := time.Now()
		s.mu.RLock()
		for _, entry := range s.local {
			if now.After(entry.expiresAt) {
				continue
			}
			raws = append(raws, entry.data)
		}
		s.mu.RUnlock()
	}

	drafts := make([]*Draft, 0, len(raws))
	for _, raw := range raws {
		var draft Draft
		if err := json.Unmarshal(raw, &draft); err != nil {
			continue
		}
		if draft.UserID != userID {
			continue
		}
		drafts = append(drafts, &draft)
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
	return drafts, nil
}

// Delete removes a draft. Deleting an unknown id is not an error.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if s.useRed {
		return Redis.Del(ctx, draftKey(id)).Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.local, id)
	return nil
}

// SweepExpired drops expired entries from the in-process fallback and
// returns how many were removed. Redis-backed entries expire on their own.
func (s *DraftStore) SweepExpired() int {
	if s.useRed {
		return 0
	}
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.local {
		if now.After(entry.expiresAt) {
			delete(s.local, id)
			removed++
		}
	}
	return removed
}
