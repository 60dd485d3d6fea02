// Package orderrepo stores finalized orders and checkout drafts in a flat
// key-value space using the storefront's key naming convention:
//
//	order_<sessionId>            finalized order record (JSON)
//	order_<sessionId>_items      staged items (JSON array)
//	order_<sessionId>_item       staged items, legacy singular key (read only)
//	order_<sessionId>_address    staged shipping address (JSON object)
//	order_<sessionId>_total      staged total (decimal integer)
//	order_<sessionId>_createdAt  creation time of the finalized order (RFC 3339)
//	order_list                   index of session IDs (JSON array)
//
// Session IDs never contain underscores, so any key with a second underscore
// is a staging key rather than a record.
package orderrepo

import (
	"strings"

	"storefront/internal/core/domain/model/kernel"
)

const (
	keyPrefix = "order_"
	indexKey  = "order_list"

	itemsSuffix       = "_items"
	legacyItemsSuffix = "_item"
	addressSuffix     = "_address"
	totalSuffix       = "_total"
	createdAtSuffix   = "_createdAt"
)

func recordKey(sessionID kernel.SessionID) string {
	return keyPrefix + sessionID.String()
}

func stagingKey(sessionID kernel.SessionID, suffix string) string {
	return recordKey(sessionID) + suffix
}

// sessionIDFromRecordKey extracts the session ID from an order record key.
// It reports false for the index key, staging keys and foreign keys.
func sessionIDFromRecordKey(key string) (kernel.SessionID, bool) {
	if key == indexKey || !strings.HasPrefix(key, keyPrefix) {
		return kernel.SessionID{}, false
	}
	sessionID, err := kernel.SessionIDFromString(strings.TrimPrefix(key, keyPrefix))
	if err != nil {
		return kernel.SessionID{}, false
	}
	return sessionID, true
}
