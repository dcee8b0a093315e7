package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/printmaania/printmaania-gobackend/internal/models"
	"github.com/printmaania/printmaania-gobackend/internal/notify"
)

var (
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrNotYourQuote         = errors.New("not your quote")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMissingTrackingID    = errors.New("tracking id is required")
)

// QuoteService drives the bulk quote lifecycle. Every transition enqueues a
// dual notification (admin + submitter) on the dispatcher; enqueue is
// non-blocking, so notification trouble never reaches the HTTP response.
type QuoteService struct {
	collection  *mongo.Collection
	notifier    *notify.Dispatcher
	adminEmail  string
	adminNumber string
}

func NewQuoteService(db *mongo.Database, notifier *notify.Dispatcher, adminEmail, adminNumber string) *QuoteService {
	return &QuoteService{
		collection:  db.Collection("quotes"),
		notifier:    notifier,
		adminEmail:  adminEmail,
		adminNumber: adminNumber,
	}
}

// Create validates the submitter's contact fields and stores the quote.
// The requirements map is stored as submitted, without validation against
// the category list. A logged-in submitter gets their identity denormalized
// onto the document; anonymous submissions carry no user id.
func (s *QuoteService) Create(ctx context.Context, quote *models.Quote, submitter *models.User) (*models.Quote, error) {
	for field, value := range map[string]string{
		"name":        quote.Name,
		"email":       quote.Email,
		"mobile":      quote.Mobile,
		"company":     quote.Company,
		"description": quote.Description,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingRequiredField, field)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	quote.ID = primitive.NewObjectID()
	quote.Confirmed = false
	quote.Cancelled = false
	quote.Delivered = false
	quote.TrackingID = ""
	quote.CreatedAt = now
	quote.UpdatedAt = now
	if submitter != nil {
		quote.UserID = submitter.ID
		quote.UserName = submitter.Name
		quote.UserEmail = submitter.Email
	}

	if _, err := s.collection.InsertOne(ctx, quote); err != nil {
		return nil, err
	}

	log.Printf("Quote created: id=%s company=%s", quote.ID.Hex(), quote.Company)
	s.notifyStage(quote, "submitted", "New quote request",
		"We received your bulk quote request. Our team will review it and get back to you shortly.")
	return quote, nil
}

// Confirm flips the confirm flag, admin-only. Stage ordering is not
// enforced; each admin transition is an independent flag.
func (s *QuoteService) Confirm(ctx context.Context, id string) (*models.Quote, error) {
	quote, err := s.setFields(ctx, id, bson.M{"confirm": true})
	if err != nil {
		return nil, err
	}
	s.notifyStage(quote, "confirmed", "Quote confirmed",
		"Your quote request has been confirmed. Production will begin shortly.")
	return quote, nil
}

// AssignTracking sets the courier tracking id, admin-only.
func (s *QuoteService) AssignTracking(ctx context.Context, id, trackingID string) (*models.Quote, error) {
	if trackingID == "" {
		return nil, ErrMissingTrackingID
	}
	quote, err := s.setFields(ctx, id, bson.M{"tracking_id": trackingID})
	if err != nil {
		return nil, err
	}
	s.notifyStage(quote, "tracking", "Your order is on its way",
		"Your bulk order has been dispatched. Use the tracking id above to follow the shipment.")
	return quote, nil
}

// MarkDelivered flips the delivered flag, admin-only.
func (s *QuoteService) MarkDelivered(ctx context.Context, id string) (*models.Quote, error) {
	quote, err := s.setFields(ctx, id, bson.M{"delivered": true})
	if err != nil {
		return nil, err
	}
	s.notifyStage(quote, "delivered", "Order delivered",
		"Your bulk order has been delivered. Thank you for printing with us.")
	return quote, nil
}

// CancelByOwner flips the cancelled flag when the requester created the
// quote. Anonymous quotes carry the zero user id and can never match, so
// nobody can cancel them, including whoever submitted them.
func (s *QuoteService) CancelByOwner(ctx context.Context, requesterID primitive.ObjectID, id string) (*models.Quote, error) {
	quote, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quote.CancellableBy(requesterID) {
		return nil, ErrNotYourQuote
	}

	updated, err := s.setFields(ctx, id, bson.M{"cancelled": true})
	if err != nil {
		return nil, err
	}
	s.notifyStage(updated, "cancelled", "Quote cancelled",
		"Your quote request has been cancelled at your request.")
	return updated, nil
}

func (s *QuoteService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Quote, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

func (s *QuoteService) ListAll(ctx context.Context) ([]models.Quote, error) {
	return s.list(ctx, bson.M{})
}

func (s *QuoteService) list(ctx context.Context, filter bson.M) ([]models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	quotes := []models.Quote{}
	if err := cur.All(ctx, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (s *QuoteService) get(ctx context.Context, id string) (*models.Quote, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrQuoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var quote models.Quote
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&quote); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (s *QuoteService) setFields(ctx context.Context, id string, fields bson.M) (*models.Quote, error) {
	quote, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": quote.ID}, bson.M{"$set": fields}); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *QuoteService) notifyStage(quote *models.Quote, stage, title, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Enqueue(notify.Message{
		Subject: fmt.Sprintf("[PrintMaania] %s - %s", title, quote.ID.Hex()),
		HTML:    notify.QuoteEmail(title, quote, message),
		Text:    fmt.Sprintf("%s (quote %s): %s", title, quote.ID.Hex(), message),
		Emails:  []string{s.adminEmail, quote.Email},
		Numbers: []string{s.adminNumber, quote.Mobile},
		QuoteID: quote.ID.Hex(),
		Stage:   stage,
	})
}
