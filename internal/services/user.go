package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/printmaania/printmaania-gobackend/internal/models"
)

var (
	ErrMissingFields      = errors.New("email and password are required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	collection *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{collection: db.Collection("users")}
}

// Register creates a password account. An existing Google-only record with
// the same email is upgraded in place rather than rejected; an email that
// already has a password fails with ErrEmailTaken. The stored document is
// re-fetched and returned as-is, hash included.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var existing models.User
	err = s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	switch {
	case err == nil:
		if existing.Password != "" {
			return nil, ErrEmailTaken
		}
		// Google-only account: attach the password, keep the record.
		update := bson.M{"$set": bson.M{
			"password":   string(hashed),
			"updated_at": time.Now(),
		}}
		if name != "" {
			update["$set"].(bson.M)["name"] = name
		}
		if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
			return nil, err
		}
		return s.findByID(ctx, existing.ID)
	case err == mongo.ErrNoDocuments:
		now := time.Now()
		user := &models.User{
			ID:        primitive.NewObjectID(),
			Name:      name,
			Email:     email,
			Password:  string(hashed),
			Role:      models.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.collection.InsertOne(ctx, user); err != nil {
			return nil, err
		}
		return s.findByID(ctx, user.ID)
	default:
		return nil, err
	}
}

// Login verifies the password. Unknown email, a password-less account, and
// a hash mismatch all return the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetByID resolves a user by hex id, as the auth middleware does on every
// authenticated request.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.findByID(ctx, objID)
}

// UpsertGoogleUser resolves a Google profile to a user record: by subject id
// first, then by email (attaching the subject id to an existing password
// account), otherwise a new record with role user.
func (s *UserService) UpsertGoogleUser(ctx context.Context, googleID, name, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"google_id": googleID}).Decode(&user)
	if err == nil {
		// Re-login: refresh the profile fields Google owns.
		update := bson.M{"$set": bson.M{"name": name, "email": email, "updated_at": time.Now()}}
		if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
			return nil, err
		}
		return s.findByID(ctx, user.ID)
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	err = s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		update := bson.M{"$set": bson.M{"google_id": googleID, "name": name, "updated_at": time.Now()}}
		if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
			return nil, err
		}
		return s.findByID(ctx, user.ID)
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	created := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		GoogleID:  googleID,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.collection.InsertOne(ctx, created); err != nil {
		return nil, err
	}
	return s.findByID(ctx, created.ID)
}

// UpdateProfile sets name and email on the user's own record.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if email != "" {
		set["email"] = email
	}
	if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.findByID(ctx, id)
}

func (s *UserService) findByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
