// Copyright (c) 2025 BVK Chaitanya

package trader

import (
	"crypto/md5"
	"time"

	"github.com/google/uuid"
)

// Client order ids are derived deterministically so that a duplicate
// invocation in the same scheduling window resubmits the same idempotency
// key instead of creating a second order.

func buyClientOrderID(productID string, serverTime time.Time) string {
	seed := "buy/" + productID + "/" + serverTime.UTC().Truncate(time.Hour).Format(time.RFC3339)
	return uuid.UUID(md5.Sum([]byte(seed))).String()
}

func sellClientOrderID(buyOrderID string) string {
	seed := "sell/" + buyOrderID
	return uuid.UUID(md5.Sum([]byte(seed))).String()
}
