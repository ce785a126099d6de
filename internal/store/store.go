// Package store persists orders and product inventory in MongoDB.
// The two collections are written together inside multi-document
// transactions so a settlement either fully commits or leaves nothing.
package store

import (
	"context"
	"errors"

	"github.com/dimasfh/storefront/internal/fault"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collOrders   = "orders"
	collProducts = "products"
)

type Store struct {
	db       *mongo.Database
	orders   *mongo.Collection
	products *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		orders:   db.Collection(collOrders),
		products: db.Collection(collProducts),
	}
}

// EnsureIndexes creates the indexes the store depends on. The unique index
// on payment_intent_id is the idempotency guard: settling the same payment
// twice surfaces a duplicate-key error instead of a second order.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "payment_intent_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
		},
	})
	if err != nil {
		return fault.Wrap(fault.KindStoreUnavailable, "create order indexes", err)
	}
	_, err = s.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sku", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fault.Wrap(fault.KindStoreUnavailable, "create product indexes", err)
	}
	return nil
}

// storeErr maps driver errors onto the failure taxonomy.
func storeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fault.Wrap(fault.KindNotFound, op+": not found", err)
	case mongo.IsDuplicateKeyError(err):
		return fault.Wrap(fault.KindConflict, op+": already exists", err)
	default:
		return fault.Wrap(fault.KindStoreUnavailable, op+" failed", err)
	}
}
