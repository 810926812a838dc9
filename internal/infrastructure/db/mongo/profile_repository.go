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

const collectionProfiles = "profiles"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storageErr("find profile", err)
	}
	return &p, nil
}

// Upsert creates the profile on first sight of an identity and updates the
// self-service fields afterwards. Role and created_at are only written on
// insert; role changes go through UpdateRole exclusively.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"email":         p.Email,
			"full_name":     p.FullName,
			"avatar_url":    p.AvatarURL,
			"facebook_link": p.FacebookLink,
			"telegram_link": p.TelegramLink,
			"whatsapp_link": p.WhatsappLink,
			"updated_at":    p.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        p.ID,
			"user_id":    p.UserID,
			"role":       string(p.Role),
			"created_at": p.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.Profile
	err := r.col.FindOneAndUpdate(ctx, bson.M{"user_id": p.UserID}, update, opts).Decode(&saved)
	if err != nil {
		return nil, storageErr("upsert profile", err)
	}
	return &saved, nil
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, userID string, role domain.Role, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"role": string(role), "updated_at": at}},
	)
	if err != nil {
		return storageErr("update profile role", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes creates the unique user_id index enforcing one profile per
// identity.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
