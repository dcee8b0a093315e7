package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/printmaania/printmaania-gobackend/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotYourOrder  = errors.New("not your order")
)

type OrderService struct {
	orders   *mongo.Collection
	products *mongo.Collection
}

func NewOrderService(db *mongo.Database) *OrderService {
	return &OrderService{
		orders:   db.Collection("orders"),
		products: db.Collection("products"),
	}
}

// Create places a direct order: the product is resolved by id (no deleted
// filter, matching the catalog's historical-resolution rule), the total is
// frozen at price x quantity, and product plus address are snapshotted into
// the document. There is no stock check.
func (s *OrderService) Create(ctx context.Context, user *models.User, productID, size string, quantity int, uploadedImage string, address models.Address) (*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var product models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	order := models.NewOrder(user, &product, size, quantity, uploadedImage, address)
	order.ID = primitive.NewObjectID()

	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("Order created: id=%s user=%s product=%s total=%.2f",
		order.ID.Hex(), user.ID.Hex(), product.ID.Hex(), order.Product.TotalPrice)
	return order, nil
}

// AppendScreenshots pushes transaction screenshots onto the order and
// persists the COD flag and free-text description alongside. Owner-only.
// No de-duplication and no cap, matching the upload endpoint's contract.
func (s *OrderService) AppendScreenshots(ctx context.Context, requesterID primitive.ObjectID, orderID string, screenshots []string, cod bool, description string) (*models.Order, error) {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, ErrNotYourOrder
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"transaction_screenshots": bson.M{"$each": screenshots}},
		"$set": bson.M{
			"cod":         cod,
			"description": description,
			"updated_at":  time.Now(),
		},
	}
	if _, err := s.orders.UpdateOne(ctx, bson.M{"_id": order.ID}, update); err != nil {
		return nil, err
	}
	return s.get(ctx, orderID)
}

// Cancel flips the cancelled flag, one-way. Owner-only. There is no guard
// against cancelling a delivered order; that lenient behavior is part of
// the current contract.
func (s *OrderService) Cancel(ctx context.Context, requesterID primitive.ObjectID, orderID string) (*models.Order, error) {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, ErrNotYourOrder
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"cancelled": true, "updated_at": time.Now()}}
	if _, err := s.orders.UpdateOne(ctx, bson.M{"_id": order.ID}, update); err != nil {
		return nil, err
	}
	return s.get(ctx, orderID)
}

// MarkDelivered is admin-only; role enforcement happens in the middleware.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.setFields(ctx, orderID, bson.M{"delivered": true})
}

// AssignTracking sets the courier tracking id, admin-only.
func (s *OrderService) AssignTracking(ctx context.Context, orderID, trackingID string) (*models.Order, error) {
	if trackingID == "" {
		return nil, ErrMissingTrackingID
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.setFields(ctx, orderID, bson.M{"tracking_id": trackingID})
}

func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *OrderService) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.orders.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) get(ctx context.Context, id string) (*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order models.Order
	if err := s.orders.FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) setFields(ctx context.Context, id string, fields bson.M) (*models.Order, error) {
	order, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields["updated_at"] = time.Now()
	if _, err := s.orders.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": fields}); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}
