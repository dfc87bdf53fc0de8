package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/helpnexus/feedback-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service enforces the feedback lifecycle rules on top of a Store: required
// fields on creation, enum membership on every mutation, append-only
// replies. Validation failures are reported before any write happens, so a
// failed operation never leaves a partially mutated entity behind.
type Service struct {
	store Store
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates and stores a new feedback entity. The entity starts in
// status Pending with sentiment unset; category defaults to General
// Feedback when empty.
func (s *Service) Create(ctx context.Context, userUID, userName, text string, category models.Category) (*models.Feedback, error) {
	if strings.TrimSpace(userUID) == "" {
		return nil, fmt.Errorf("%w: user uid is required", ErrValidation)
	}
	if strings.TrimSpace(userName) == "" {
		return nil, fmt.Errorf("%w: user name is required", ErrValidation)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: feedback text is required", ErrValidation)
	}
	if category == "" {
		category = models.CategoryGeneralFeedback
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}

	now := time.Now()
	fb := &models.Feedback{
		ID:           primitive.NewObjectID(),
		UserUID:      userUID,
		UserName:     userName,
		FeedbackText: text,
		Category:     category,
		Status:       models.StatusPending,
		Sentiment:    models.SentimentUnset,
		Replies:      []models.Reply{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// SetStatus overwrites the status of a feedback entity. Any enumerated
// status may be set from any other; there is no transition table.
func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (*models.Feedback, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// SetAdminResponse replaces the admin response on a feedback entity.
// Responses are overwritten, not appended.
func (s *Service) SetAdminResponse(ctx context.Context, id primitive.ObjectID, response string) (*models.Feedback, error) {
	return s.store.SetAdminResponse(ctx, id, strings.TrimSpace(response))
}

// AppendReply appends a reply to the end of the entity's reply thread.
func (s *Service) AppendReply(ctx context.Context, id primitive.ObjectID, from models.ReplyOrigin, message string) (*models.Feedback, error) {
	if !from.Valid() {
		return nil, fmt.Errorf("%w: unknown reply origin %q", ErrValidation, from)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: reply message is required", ErrValidation)
	}
	reply := models.Reply{From: from, Message: message, Time: time.Now()}
	return s.store.PushReply(ctx, id, reply)
}

// ApplySentiment writes the scorer's result into the entity's sentiment
// fields.
func (s *Service) ApplySentiment(ctx context.Context, id primitive.ObjectID, sentiment models.Sentiment, score float64) (*models.Feedback, error) {
	if !sentiment.Valid() || sentiment == models.SentimentUnset {
		return nil, fmt.Errorf("%w: unknown sentiment %q", ErrValidation, sentiment)
	}
	if score < 0 || score > 1 {
		return nil, fmt.Errorf("%w: sentiment score %v out of range", ErrValidation, score)
	}
	return s.store.SetSentiment(ctx, id, sentiment, score)
}

// FindByID returns one feedback entity or ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	return s.store.FindByID(ctx, id)
}

// FindByUser returns all feedback submitted by one user, newest first.
func (s *Service) FindByUser(ctx context.Context, userUID string) ([]models.Feedback, error) {
	return s.store.FindByUser(ctx, userUID)
}

// FindByStatus returns all feedback in the given status, newest first.
func (s *Service) FindByStatus(ctx context.Context, status models.Status) ([]models.Feedback, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.store.FindByStatus(ctx, status)
}

// FindBySentiment returns all feedback with the given sentiment label,
// newest first.
func (s *Service) FindBySentiment(ctx context.Context, sentiment models.Sentiment) ([]models.Feedback, error) {
	if !sentiment.Valid() {
		return nil, fmt.Errorf("%w: unknown sentiment %q", ErrValidation, sentiment)
	}
	return s.store.FindBySentiment(ctx, sentiment)
}

// ListAll returns every feedback entity, newest first.
func (s *Service) ListAll(ctx context.Context) ([]models.Feedback, error) {
	return s.store.ListAll(ctx)
}

// Delete permanently removes a feedback entity.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}
