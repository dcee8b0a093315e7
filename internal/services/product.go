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

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	collection *mongo.Collection
}

func NewProductService(db *mongo.Database) *ProductService {
	return &ProductService{collection: db.Collection("products")}
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	product.ID = primitive.NewObjectID()
	product.Deleted = false
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List returns the public catalog: soft-deleted products are filtered out.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.M{"deleted": false},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get resolves a product by id without the deleted filter, so historical
// orders keep resolving products removed from the public catalog.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var product models.Product
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":           product.Name,
		"sizes":          product.Sizes,
		"mrp":            product.MRP,
		"price":          product.Price,
		"pictures":       product.Pictures,
		"uploadrequired": product.UploadRequired,
		"category":       product.Category,
		"phrases":        product.Phrases,
		"updated_at":     time.Now(),
	}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrProductNotFound
	}

	return s.Get(ctx, id)
}

// Delete soft-deletes: the document stays resolvable for existing orders.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
