package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/printmaania/printmaania-gobackend/internal/models"
)

var ErrOfferNotFound = errors.New("offer not found")

type OfferService struct {
	collection *mongo.Collection
}

func NewOfferService(db *mongo.Database) *OfferService {
	return &OfferService{collection: db.Collection("offers")}
}

func (s *OfferService) Create(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	offer.ID = primitive.NewObjectID()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *OfferService) List(ctx context.Context) ([]models.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.D{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	offers := []models.Offer{}
	if err := cur.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (s *OfferService) Update(ctx context.Context, id string, offer *models.Offer) (*models.Offer, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOfferNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       offer.Title,
		"description": offer.Description,
		"image_url":   offer.ImageURL,
		"active":      offer.Active,
		"updated_at":  time.Now(),
	}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrOfferNotFound
	}

	var updated models.Offer
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *OfferService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOfferNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrOfferNotFound
	}
	return nil
}
