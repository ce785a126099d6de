package store

import (
	"context"
	"time"

	"github.com/dimasfh/storefront/internal/fault"
	"github.com/dimasfh/storefront/internal/orders"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettleBatch inserts the order and applies every inventory delta in one
// transaction. Partial writes are impossible: if any decrement fails the
// order insert is rolled back with it.
func (s *Store) SettleBatch(ctx context.Context, o *orders.Order, deltas []orders.InventoryDelta) (string, error) {
	sess, err := s.db.Client().StartSession()
	if err != nil {
		return "", storeErr("start settlement session", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		if _, err := s.orders.InsertOne(sc, o); err != nil {
			return nil, err
		}
		for _, d := range deltas {
			res, err := s.products.UpdateOne(sc,
				bson.M{"_id": d.ProductID},
				bson.M{
					"$inc": bson.M{"inventory": d.Delta},
					"$set": bson.M{"updated_at": time.Now().UTC()},
				})
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, fault.Newf(fault.KindInvalidArgument, "unknown product %s", d.ProductID)
			}
		}
		return nil, nil
	})
	if err != nil {
		if fault.KindOf(err) == fault.KindInvalidArgument {
			return "", err
		}
		return "", storeErr("settle order", err)
	}
	return o.ID, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	var o orders.Order
	if err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, storeErr("get order", err)
	}
	return &o, nil
}

// OrderIDByPaymentIntent resolves an already-settled payment to its order.
func (s *Store) OrderIDByPaymentIntent(ctx context.Context, intentID string) (string, error) {
	var doc struct {
		ID string `bson:"_id"`
	}
	err := s.orders.FindOne(ctx, bson.M{"payment_intent_id": intentID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&doc)
	if err != nil {
		return "", storeErr("lookup order by payment intent", err)
	}
	return doc.ID, nil
}

// UpdateOrderStatus applies a partial update: status, optional tracking
// number, and a fresh updated_at stamp. Returns the updated order.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status orders.Status, trackingNumber string) (*orders.Order, error) {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if trackingNumber != "" {
		set["tracking_number"] = trackingNumber
	}

	var o orders.Order
	err := s.orders.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if err != nil {
		return nil, storeErr("update order status", err)
	}
	return &o, nil
}

// ConfirmedOrdersBetween returns confirmed orders created within
// [start, end] inclusive.
func (s *Store) ConfirmedOrdersBetween(ctx context.Context, start, end time.Time) ([]orders.Order, error) {
	cur, err := s.orders.Find(ctx, bson.M{
		"status":     orders.StatusConfirmed,
		"created_at": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, storeErr("query confirmed orders", err)
	}
	defer cur.Close(ctx)

	var out []orders.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr("decode confirmed orders", err)
	}
	return out, nil
}
