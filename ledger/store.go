// Copyright (c) 2025 BVK Chaitanya

package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bvk/bandbot/kvutil"
	"github.com/bvkgo/kv"
)

const Keyspace = "/orders"

// Store keeps order records in a kv database, one gob-encoded record per buy
// order id.
type Store struct {
	db kv.Database
}

func NewStore(db kv.Database) *Store {
	return &Store{db: db}
}

func recordKey(buyOrderID string) string {
	return Keyspace + "/" + buyOrderID
}

// Merge upserts a record. When a record for the same buy order id already
// exists, non-zero fields of the argument overwrite the stored values and
// every other stored field is retained, so partial updates from different
// phases never clobber each other.
func (s *Store) Merge(ctx context.Context, rec *OrderRecord) error {
	if len(rec.BuyOrderID) == 0 {
		return fmt.Errorf("order record has no buy order id: %w", os.ErrInvalid)
	}
	merge := func(ctx context.Context, rw kv.ReadWriter) error {
		key := recordKey(rec.BuyOrderID)
		old, err := kvutil.Get[OrderRecord](ctx, rw, key)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if old == nil {
			old = new(OrderRecord)
		}
		old.mergeFrom(rec)
		return kvutil.Set(ctx, rw, key, old)
	}
	return kv.WithReadWriter(ctx, s.db, merge)
}

// Get returns the record for a buy order id. Returns os.ErrNotExist when no
// record exists.
func (s *Store) Get(ctx context.Context, buyOrderID string) (*OrderRecord, error) {
	return kvutil.GetDB[OrderRecord](ctx, s.db, recordKey(buyOrderID))
}

// Pending returns records whose sell leg is not yet created, i.e., with an
// empty sell order id.
func (s *Store) Pending(ctx context.Context) ([]*OrderRecord, error) {
	var recs []*OrderRecord
	collect := func(ctx context.Context, r kv.Reader, key string, rec *OrderRecord) error {
		if len(rec.SellOrderID) == 0 {
			recs = append(recs, rec)
		}
		return nil
	}
	begin, end := kvutil.PathRange(Keyspace)
	if err := kvutil.AscendDB(ctx, s.db, begin, end, collect); err != nil {
		return nil, fmt.Errorf("could not scan order records: %w", err)
	}
	return recs, nil
}

// List returns all order records in buy order id order.
func (s *Store) List(ctx context.Context) ([]*OrderRecord, error) {
	var recs []*OrderRecord
	collect := func(ctx context.Context, r kv.Reader, key string, rec *OrderRecord) error {
		recs = append(recs, rec)
		return nil
	}
	begin, end := kvutil.PathRange(Keyspace)
	if err := kvutil.AscendDB(ctx, s.db, begin, end, collect); err != nil {
		return nil, fmt.Errorf("could not scan order records: %w", err)
	}
	return recs, nil
}
