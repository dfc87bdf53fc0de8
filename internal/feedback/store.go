// Package feedback implements the feedback lifecycle: creation, status
// changes, admin responses, threaded replies and sentiment writes, plus the
// queries the dashboard is built on. Storage is abstracted behind the Store
// interface so the service can be tested without a running database.
package feedback

import (
	"context"
	"errors"

	"github.com/helpnexus/feedback-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no feedback exists for the given id.
	ErrNotFound = errors.New("feedback not found")
	// ErrValidation is returned when an operation's input is malformed:
	// a required field is missing or an enum value is out of range.
	ErrValidation = errors.New("invalid input")
)

// Store is the persistence contract for feedback entities. Every mutation
// is atomic for a single entity: it either fully applies (and bumps
// updatedAt) or leaves the stored record untouched. PushReply is additive,
// never an overwrite of a stale copy of the reply list. All finders return
// entities ordered newest-createdAt-first.
type Store interface {
	Insert(ctx context.Context, fb *models.Feedback) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error)
	FindByUser(ctx context.Context, userUID string) ([]models.Feedback, error)
	FindByStatus(ctx context.Context, status models.Status) ([]models.Feedback, error)
	FindBySentiment(ctx context.Context, sentiment models.Sentiment) ([]models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (*models.Feedback, error)
	SetAdminResponse(ctx context.Context, id primitive.ObjectID, response string) (*models.Feedback, error)
	PushReply(ctx context.Context, id primitive.ObjectID, reply models.Reply) (*models.Feedback, error)
	SetSentiment(ctx context.Context, id primitive.ObjectID, sentiment models.Sentiment, score float64) (*models.Feedback, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
