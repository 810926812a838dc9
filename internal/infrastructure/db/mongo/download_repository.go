package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/myne7x/store-api/internal/core/domain"
)

// DownloadRepository persists the entitlement ledger. Grant touches both
// user_downloads and products, so it holds the database handle.
type DownloadRepository struct {
	db *mongo.Database
}

func NewDownloadRepository(db *mongo.Database) *DownloadRepository {
	return &DownloadRepository{db: db}
}

func (r *DownloadRepository) col() *mongo.Collection {
	return r.db.Collection(collectionDownloads)
}

// Grant inserts the entitlement and increments the product's downloads_count
// in one transaction. The upsert on the unique (user_id, product_id) pair
// makes repeated grants no-ops: the counter is only bumped when a row was
// actually inserted.
func (r *DownloadRepository) Grant(ctx context.Context, d *domain.UserDownload) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return false, storageErr("start session", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col().UpdateOne(sc,
			bson.M{"user_id": d.UserID, "product_id": d.ProductID},
			bson.M{"$setOnInsert": bson.M{
				"_id":           d.ID,
				"user_id":       d.UserID,
				"product_id":    d.ProductID,
				"downloaded_at": d.DownloadedAt,
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return false, err
		}
		if res.UpsertedCount == 0 {
			return false, nil // already entitled
		}

		products := r.db.Collection(collectionProducts)
		if _, err := products.UpdateOne(sc,
			bson.M{"_id": d.ProductID},
			bson.M{"$inc": bson.M{"downloads_count": 1}},
		); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, storageErr("grant entitlement", err)
	}
	return result.(bool), nil
}

func (r *DownloadRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.col().FindOne(ctx,
		bson.M{"user_id": userID, "product_id": productID},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, storageErr("check entitlement", err)
	}
	return true, nil
}

func (r *DownloadRepository) ListByUser(ctx context.Context, userID string) ([]*domain.UserDownload, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "downloaded_at", Value: -1}})
	cursor, err := r.col().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, storageErr("list downloads", err)
	}
	defer cursor.Close(ctx)

	var downloads []*domain.UserDownload
	if err := cursor.All(ctx, &downloads); err != nil {
		return nil, storageErr("decode downloads", err)
	}
	return downloads, nil
}

// EnsureIndexes creates the unique (user_id, product_id) index that backs
// entitlement idempotence.
func (r *DownloadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col().Indexes().CreateMany(ctx, indexes)
	return err
}
