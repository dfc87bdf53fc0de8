package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/helpnexus/feedback-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the MongoDB implementation of Store. Mutations are single
// atomic update documents ($set / $push) against one document, so concurrent
// operations on different feedback entries never block each other, and
// concurrent replies to the same entry are all kept.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a MongoStore over the "feedbacks" collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("feedbacks")}
}

func (s *MongoStore) Insert(ctx context.Context, fb *models.Feedback) error {
	if _, err := s.collection.InsertOne(ctx, fb); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	var fb models.Feedback
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&fb)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	return &fb, nil
}

func (s *MongoStore) FindByUser(ctx context.Context, userUID string) ([]models.Feedback, error) {
	return s.find(ctx, bson.M{"userUid": userUID})
}

func (s *MongoStore) FindByStatus(ctx context.Context, status models.Status) ([]models.Feedback, error) {
	return s.find(ctx, bson.M{"status": status})
}

func (s *MongoStore) FindBySentiment(ctx context.Context, sentiment models.Sentiment) ([]models.Feedback, error) {
	return s.find(ctx, bson.M{"sentiment": sentiment})
}

func (s *MongoStore) ListAll(ctx context.Context) ([]models.Feedback, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (*models.Feedback, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
}

func (s *MongoStore) SetAdminResponse(ctx context.Context, id primitive.ObjectID, response string) (*models.Feedback, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"adminResponse": response, "updatedAt": time.Now()},
	})
}

func (s *MongoStore) PushReply(ctx context.Context, id primitive.ObjectID, reply models.Reply) (*models.Feedback, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{
		"$push": bson.M{"replies": reply},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

func (s *MongoStore) SetSentiment(ctx context.Context, id primitive.ObjectID, sentiment models.Sentiment, score float64) (*models.Feedback, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"sentiment": sentiment, "sentimentScore": score, "updatedAt": time.Now()},
	})
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedbacks: %w", err)
	}
	defer cursor.Close(ctx)

	feedbacks := []models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("failed to decode feedbacks: %w", err)
	}
	return feedbacks, nil
}

func (s *MongoStore) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Feedback, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var fb models.Feedback
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&fb)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}
	return &fb, nil
}
