package feedback

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/helpnexus/feedback-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store used in tests. Entities are copied on
// the way in and out so callers can never mutate stored state behind the
// store's back. A sequence number breaks createdAt ties so newest-first
// ordering stays deterministic even when entries share a timestamp.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[primitive.ObjectID]*memoryEntry
	seq     int
}

type memoryEntry struct {
	fb  models.Feedback
	seq int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[primitive.ObjectID]*memoryEntry)}
}

func (s *MemoryStore) Insert(_ context.Context, fb *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.entries[fb.ID] = &memoryEntry{fb: cloneFeedback(*fb), seq: s.seq}
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	fb := cloneFeedback(entry.fb)
	return &fb, nil
}

func (s *MemoryStore) FindByUser(_ context.Context, userUID string) ([]models.Feedback, error) {
	return s.find(func(fb *models.Feedback) bool { return fb.UserUID == userUID }), nil
}

func (s *MemoryStore) FindByStatus(_ context.Context, status models.Status) ([]models.Feedback, error) {
	return s.find(func(fb *models.Feedback) bool { return fb.Status == status }), nil
}

func (s *MemoryStore) FindBySentiment(_ context.Context, sentiment models.Sentiment) ([]models.Feedback, error) {
	return s.find(func(fb *models.Feedback) bool { return fb.Sentiment == sentiment }), nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]models.Feedback, error) {
	return s.find(func(*models.Feedback) bool { return true }), nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.Status) (*models.Feedback, error) {
	return s.update(id, func(fb *models.Feedback) {
		fb.Status = status
	})
}

func (s *MemoryStore) SetAdminResponse(_ context.Context, id primitive.ObjectID, response string) (*models.Feedback, error) {
	return s.update(id, func(fb *models.Feedback) {
		fb.AdminResponse = response
	})
}

func (s *MemoryStore) PushReply(_ context.Context, id primitive.ObjectID, reply models.Reply) (*models.Feedback, error) {
	return s.update(id, func(fb *models.Feedback) {
		fb.Replies = append(fb.Replies, reply)
	})
}

func (s *MemoryStore) SetSentiment(_ context.Context, id primitive.ObjectID, sentiment models.Sentiment, score float64) (*models.Feedback, error) {
	return s.update(id, func(fb *models.Feedback) {
		fb.Sentiment = sentiment
		fb.SentimentScore = score
	})
}

func (s *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) find(match func(*models.Feedback) bool) []models.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []*memoryEntry{}
	for _, entry := range s.entries {
		if match(&entry.fb) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].fb.CreatedAt.Equal(entries[j].fb.CreatedAt) {
			return entries[i].fb.CreatedAt.After(entries[j].fb.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})

	feedbacks := make([]models.Feedback, len(entries))
	for i, entry := range entries {
		feedbacks[i] = cloneFeedback(entry.fb)
	}
	return feedbacks
}

func (s *MemoryStore) update(id primitive.ObjectID, mutate func(*models.Feedback)) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	mutate(&entry.fb)
	entry.fb.UpdatedAt = time.Now()

	fb := cloneFeedback(entry.fb)
	return &fb, nil
}

func cloneFeedback(fb models.Feedback) models.Feedback {
	if fb.Replies != nil {
		replies := make([]models.Reply, len(fb.Replies))
		copy(replies, fb.Replies)
		fb.Replies = replies
	}
	return fb
}
