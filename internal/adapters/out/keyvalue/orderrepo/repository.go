package orderrepo

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository on top of a key-value store.
//
// Writes to the index are serialized by a mutex so that concurrent Put calls
// in one process never lose or duplicate an entry.
type OrderRepository struct {
	kv ports.KeyValueStore
	mu sync.Mutex
}

// NewOrderRepository creates a repository over kv.
func NewOrderRepository(kv ports.KeyValueStore) *OrderRepository {
	return &OrderRepository{kv: kv}
}

// Put writes the full record, the creation-time key read by older clients,
// and the index entry.
func (r *OrderRepository) Put(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	record, err := marshal(fromDomain(aggregate))
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID := aggregate.SessionID()
	if err = r.kv.Set(ctx, recordKey(sessionID), record); err != nil {
		return err
	}
	if err = r.kv.Set(ctx, stagingKey(sessionID, createdAtSuffix), formatTime(aggregate.CreatedAt())); err != nil {
		return err
	}

	index, err := r.listIndexedLocked(ctx)
	if err != nil {
		return err
	}
	if containsSessionID(index, sessionID) {
		return nil
	}
	return r.saveIndex(ctx, append(index, sessionID))
}

// Get loads the finalized order for sessionID.
func (r *OrderRepository) Get(ctx context.Context, sessionID kernel.SessionID) (*order.Order, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	key := recordKey(sessionID)
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", sessionID.String())
	}

	var dto OrderDTO
	if err = json.Unmarshal([]byte(raw), &dto); err != nil {
		return nil, errs.NewRecordIsCorruptErrorWithCause(key, err)
	}

	o, err := toDomain(sessionID, dto)
	if err != nil {
		return nil, errs.NewRecordIsCorruptErrorWithCause(key, err)
	}
	return o, nil
}

// ListIndexed returns the index, rebuilding it first when it is missing or
// unreadable. A stored empty index is trusted; RebuildIndex repairs one that
// lags behind the record keys.
func (r *OrderRepository) ListIndexed(ctx context.Context) ([]kernel.SessionID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.listIndexedLocked(ctx)
}

// RebuildIndex scans the record keys and adds every session ID the index is
// missing, after the entries it already holds.
func (r *OrderRepository) RebuildIndex(ctx context.Context) ([]kernel.SessionID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, _, err := r.loadIndex(ctx)
	if err != nil && !errors.Is(err, errs.ErrRecordIsCorrupt) {
		return nil, err
	}
	return r.rebuildLocked(ctx, index)
}

func (r *OrderRepository) listIndexedLocked(ctx context.Context) ([]kernel.SessionID, error) {
	index, found, err := r.loadIndex(ctx)
	switch {
	case errors.Is(err, errs.ErrRecordIsCorrupt):
		return r.rebuildLocked(ctx, nil)
	case err != nil:
		return nil, err
	case !found:
		return r.rebuildLocked(ctx, nil)
	}
	return index, nil
}

func (r *OrderRepository) rebuildLocked(ctx context.Context, index []kernel.SessionID) ([]kernel.SessionID, error) {
	keys, err := r.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	rebuilt := slices.Clone(index)
	for _, key := range keys {
		sessionID, ok := sessionIDFromRecordKey(key)
		if !ok || containsSessionID(rebuilt, sessionID) {
			continue
		}
		rebuilt = append(rebuilt, sessionID)
	}

	if err = r.saveIndex(ctx, rebuilt); err != nil {
		return nil, err
	}
	return rebuilt, nil
}

// loadIndex reads the index and reports whether the key exists. Entries that
// are not valid session IDs and repeated entries are dropped.
func (r *OrderRepository) loadIndex(ctx context.Context) ([]kernel.SessionID, bool, error) {
	raw, ok, err := r.kv.Get(ctx, indexKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var entries []string
	if err = json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, true, errs.NewRecordIsCorruptErrorWithCause(indexKey, err)
	}

	index := make([]kernel.SessionID, 0, len(entries))
	for _, entry := range entries {
		sessionID, parseErr := kernel.SessionIDFromString(entry)
		if parseErr != nil || containsSessionID(index, sessionID) {
			continue
		}
		index = append(index, sessionID)
	}
	return index, true, nil
}

func (r *OrderRepository) saveIndex(ctx context.Context, index []kernel.SessionID) error {
	entries := make([]string, 0, len(index))
	for _, sessionID := range index {
		entries = append(entries, sessionID.String())
	}

	raw, err := marshal(entries)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, indexKey, raw)
}

func containsSessionID(index []kernel.SessionID, sessionID kernel.SessionID) bool {
	return slices.ContainsFunc(index, sessionID.IsEqual)
}
