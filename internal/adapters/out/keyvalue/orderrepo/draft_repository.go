package orderrepo

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// DraftRepository implements ports.DraftRepository with one staging key per field.
type DraftRepository struct {
	kv ports.KeyValueStore
}

// NewDraftRepository creates a draft repository over kv.
func NewDraftRepository(kv ports.KeyValueStore) *DraftRepository {
	return &DraftRepository{kv: kv}
}

func (r *DraftRepository) SaveItems(ctx context.Context, sessionID kernel.SessionID, items []order.Item) error {
	return r.save(ctx, sessionID, itemsSuffix, itemsFromDomain(items))
}

func (r *DraftRepository) SaveAddress(ctx context.Context, sessionID kernel.SessionID, address order.ShippingAddress) error {
	return r.save(ctx, sessionID, addressSuffix, addressFromDomain(address))
}

func (r *DraftRepository) SaveTotal(ctx context.Context, sessionID kernel.SessionID, total int64) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}
	return r.kv.Set(ctx, stagingKey(sessionID, totalSuffix), strconv.FormatInt(total, 10))
}

// LoadDraft reads every staging key of sessionID. Items fall back to the
// legacy singular key. A staging value that cannot be decoded is reported as
// errs.RecordIsCorruptError naming the key.
func (r *DraftRepository) LoadDraft(ctx context.Context, sessionID kernel.SessionID) (order.Draft, error) {
	if err := sessionID.Validate(); err != nil {
		return order.Draft{}, err
	}

	var draft order.Draft

	itemsKey, raw, ok, err := r.firstPresent(ctx,
		stagingKey(sessionID, itemsSuffix),
		stagingKey(sessionID, legacyItemsSuffix),
	)
	if err != nil {
		return order.Draft{}, err
	}
	if ok {
		var dtos []ItemDTO
		if err = json.Unmarshal([]byte(raw), &dtos); err != nil {
			return order.Draft{}, errs.NewRecordIsCorruptErrorWithCause(itemsKey, err)
		}
		items, convErr := itemsToDomain(dtos)
		if convErr != nil {
			return order.Draft{}, errs.NewRecordIsCorruptErrorWithCause(itemsKey, convErr)
		}
		draft = draft.WithItems(items)
	}

	addressKey := stagingKey(sessionID, addressSuffix)
	if raw, ok, err = r.kv.Get(ctx, addressKey); err != nil {
		return order.Draft{}, err
	} else if ok {
		var dto AddressDTO
		if err = json.Unmarshal([]byte(raw), &dto); err != nil {
			return order.Draft{}, errs.NewRecordIsCorruptErrorWithCause(addressKey, err)
		}
		draft = draft.WithAddress(dto.toDomain())
	}

	totalKey := stagingKey(sessionID, totalSuffix)
	if raw, ok, err = r.kv.Get(ctx, totalKey); err != nil {
		return order.Draft{}, err
	} else if ok {
		total, parseErr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if parseErr != nil {
			return order.Draft{}, errs.NewRecordIsCorruptErrorWithCause(totalKey, parseErr)
		}
		draft = draft.WithTotal(total)
	}

	createdAtKey := stagingKey(sessionID, createdAtSuffix)
	if raw, ok, err = r.kv.Get(ctx, createdAtKey); err != nil {
		return order.Draft{}, err
	} else if ok {
		createdAt, parseErr := parseTime(strings.TrimSpace(raw))
		if parseErr != nil {
			return order.Draft{}, errs.NewRecordIsCorruptErrorWithCause(createdAtKey, parseErr)
		}
		draft = draft.WithCreatedAt(createdAt)
	}

	return draft, nil
}

func (r *DraftRepository) save(ctx context.Context, sessionID kernel.SessionID, suffix string, v any) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}
	raw, err := marshal(v)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, stagingKey(sessionID, suffix), raw)
}

func (r *DraftRepository) firstPresent(ctx context.Context, keys ...string) (string, string, bool, error) {
	for _, key := range keys {
		raw, ok, err := r.kv.Get(ctx, key)
		if err != nil {
			return "", "", false, err
		}
		if ok {
			return key, raw, true, nil
		}
	}
	return "", "", false, nil
}
