package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

const collectionRequests = "payment_requests"

// RequestRepository persists payment requests. Decide spans three
// collections (payment_requests, user_downloads, products) and therefore
// holds the database handle rather than a single collection.
type RequestRepository struct {
	db *mongo.Database
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) col() *mongo.Collection {
	return r.db.Collection(collectionRequests)
}

// Create inserts a new pending request. The partial unique index on
// (user_id, product_id) where status="pending" makes the at-most-one-pending
// invariant hold under concurrent inserts: the second writer gets a duplicate
// key error.
func (r *RequestRepository) Create(ctx context.Context, req *domain.PaymentRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col().InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRequest
		}
		return storageErr("insert payment request", err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.PaymentRequest
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, storageErr("find payment request", err)
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context, filter ports.ListRequestsFilter) ([]*domain.PaymentRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col().Find(ctx, query, opts)
	if err != nil {
		return nil, storageErr("list payment requests", err)
	}
	defer cursor.Close(ctx)

	var requests []*domain.PaymentRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, storageErr("decode payment requests", err)
	}
	return requests, nil
}

// Decide transitions a pending request to a terminal status. The compare-and-
// set on status guarantees exactly one of two concurrent decisions wins; the
// loser observes a non-pending request and fails with ErrInvalidTransition.
// On approval, the entitlement insert and downloads_count increment run in
// the same multi-document transaction as the status flip: all or nothing.
func (r *RequestRepository) Decide(ctx context.Context, upd ports.DecideUpdate) (*domain.PaymentRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, storageErr("start session", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.decideTxn(sc, upd)
	})
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) || errors.Is(err, domain.ErrInvalidTransition) {
			return nil, err
		}
		return nil, storageErr("decide payment request", err)
	}
	return result.(*domain.PaymentRequest), nil
}

func (r *RequestRepository) decideTxn(sc mongo.SessionContext, upd ports.DecideUpdate) (*domain.PaymentRequest, error) {
	filter := bson.M{"_id": upd.RequestID, "status": domain.RequestPending}
	update := bson.M{"$set": bson.M{
		"status":      string(upd.Status),
		"approved_by": upd.DeciderID,
		"approved_at": upd.DecidedAt,
		"updated_at":  upd.DecidedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var request domain.PaymentRequest
	err := r.col().FindOneAndUpdate(sc, filter, update, opts).Decode(&request)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		// CAS miss: distinguish unknown id from already-decided request.
		count, countErr := r.col().CountDocuments(sc, bson.M{"_id": upd.RequestID})
		if countErr != nil {
			return nil, countErr
		}
		if count == 0 {
			return nil, domain.ErrRequestNotFound
		}
		return nil, domain.ErrInvalidTransition
	}

	if upd.Status != domain.RequestApproved {
		return &request, nil
	}

	// Approval: record the entitlement, idempotently, and bump the counter
	// only when a new entitlement row was actually created.
	downloads := r.db.Collection(collectionDownloads)
	res, err := downloads.UpdateOne(sc,
		bson.M{"user_id": request.UserID, "product_id": request.ProductID},
		bson.M{"$setOnInsert": bson.M{
			"_id":           upd.DownloadID,
			"user_id":       request.UserID,
			"product_id":    request.ProductID,
			"downloaded_at": upd.DecidedAt,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	if res.UpsertedCount > 0 {
		products := r.db.Collection(collectionProducts)
		if _, err := products.UpdateOne(sc,
			bson.M{"_id": request.ProductID},
			bson.M{"$inc": bson.M{"downloads_count": 1}},
		); err != nil {
			return nil, err
		}
	}

	return &request, nil
}

// EnsureIndexes creates necessary indexes on the payment_requests collection,
// including the partial unique index backing the duplicate-pending guard.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.RequestPending)}),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col().Indexes().CreateMany(ctx, indexes)
	return err
}
