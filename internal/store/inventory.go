package store

import (
	"context"
	"time"

	"github.com/dimasfh/storefront/internal/orders"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) ListProducts(ctx context.Context) ([]orders.Product, error) {
	cur, err := s.products.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "sku", Value: 1}}))
	if err != nil {
		return nil, storeErr("list products", err)
	}
	defer cur.Close(ctx)

	var out []orders.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr("decode products", err)
	}
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, productID string) (*orders.Product, error) {
	var p orders.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": productID}).Decode(&p); err != nil {
		return nil, storeErr("get product", err)
	}
	return &p, nil
}

// UpsertProduct writes catalog data for a product, creating the document
// with a zero inventory counter when it does not exist yet.
func (s *Store) UpsertProduct(ctx context.Context, p *orders.Product) error {
	now := time.Now().UTC()
	_, err := s.products.UpdateOne(ctx,
		bson.M{"_id": p.ID},
		bson.M{
			"$set": bson.M{
				"sku":         p.SKU,
				"name":        p.Name,
				"price_cents": p.PriceCents,
				"updated_at":  now,
			},
			"$setOnInsert": bson.M{
				"inventory":  p.Inventory,
				"created_at": now,
			},
		},
		options.Update().SetUpsert(true))
	return storeErr("upsert product", err)
}

// AdjustInventory applies a relative delta outside of settlement, e.g. a
// restock. Settlement decrements go through SettleBatch instead.
func (s *Store) AdjustInventory(ctx context.Context, productID string, delta int) error {
	res, err := s.products.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{
			"$inc": bson.M{"inventory": delta},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return storeErr("adjust inventory", err)
	}
	if res.MatchedCount == 0 {
		return storeErr("adjust inventory", mongo.ErrNoDocuments)
	}
	return nil
}
