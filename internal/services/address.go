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

var ErrAddressNotFound = errors.New("address not found")

type AddressService struct {
	collection *mongo.Collection
}

func NewAddressService(db *mongo.Database) *AddressService {
	return &AddressService{collection: db.Collection("addresses")}
}

func (s *AddressService) Create(ctx context.Context, userID primitive.ObjectID, address *models.Address) (*models.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	address.ID = primitive.NewObjectID()
	address.UserID = userID
	address.CreatedAt = time.Now()

	if _, err := s.collection.InsertOne(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update mutates an address only when it belongs to the requesting user;
// the owner id is part of the filter, so a foreign id looks like not-found.
func (s *AddressService) Update(ctx context.Context, userID primitive.ObjectID, id string, address *models.Address) (*models.Address, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAddressNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":    address.Name,
		"mobile":  address.Mobile,
		"doorno":  address.DoorNo,
		"street":  address.Street,
		"city":    address.City,
		"pincode": address.Pincode,
		"state":   address.State,
	}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID, "user": userID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrAddressNotFound
	}

	var updated models.Address
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *AddressService) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrAddressNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID, "user": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (s *AddressService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	addresses := []models.Address{}
	if err := cur.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Get resolves an address owned by the user, for copying into an order.
func (s *AddressService) Get(ctx context.Context, userID primitive.ObjectID, id string) (*models.Address, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAddressNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var address models.Address
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID, "user": userID}).Decode(&address); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &address, nil
}
