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

var ErrBannerNotFound = errors.New("banner not found")

type BannerService struct {
	collection *mongo.Collection
}

func NewBannerService(db *mongo.Database) *BannerService {
	return &BannerService{collection: db.Collection("banners")}
}

func (s *BannerService) Create(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	banner.ID = primitive.NewObjectID()
	banner.CreatedAt = time.Now()

	if _, err := s.collection.InsertOne(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) List(ctx context.Context) ([]models.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.D{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	banners := []models.Banner{}
	if err := cur.All(ctx, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBannerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrBannerNotFound
	}
	return nil
}
