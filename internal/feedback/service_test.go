package feedback

import (
	"context"
	"sync"
	"testing"

	"github.com/helpnexus/feedback-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService() *Service {
	return NewService(NewMemoryStore())
}

func mustCreate(t *testing.T, svc *Service, uid, name, text string, category models.Category) *models.Feedback {
	t.Helper()
	fb, err := svc.Create(context.Background(), uid, name, text, category)
	require.NoError(t, err)
	return fb
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService()

	fb := mustCreate(t, svc, "uid-1", "Ada", "The search is slow", "")

	assert.False(t, fb.ID.IsZero())
	assert.Equal(t, models.StatusPending, fb.Status)
	assert.Equal(t, models.SentimentUnset, fb.Sentiment)
	assert.Equal(t, models.CategoryGeneralFeedback, fb.Category)
	assert.Empty(t, fb.Replies)
	assert.Equal(t, fb.CreatedAt, fb.UpdatedAt)

	stored, err := svc.FindByID(context.Background(), fb.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Equal(t, models.SentimentUnset, stored.Sentiment)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		uid      string
		userName string
		text     string
		category models.Category
	}{
		{"empty text", "uid-1", "Ada", "", ""},
		{"whitespace text", "uid-1", "Ada", "   ", ""},
		{"missing uid", "", "Ada", "some text", ""},
		{"missing user name", "uid-1", "", "some text", ""},
		{"unknown category", "uid-1", "Ada", "some text", "Complaint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.uid, tt.userName, tt.text, tt.category)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// nothing was stored by the failed creates
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSetStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	fb := mustCreate(t, svc, "uid-1", "Ada", "Broken button", models.CategoryBugReport)

	updated, err := svc.SetStatus(ctx, fb.ID, models.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	// any status may be set from any other; no transition table
	updated, err = svc.SetStatus(ctx, fb.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
}

func TestSetStatusInvalidLeavesEntityUntouched(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	fb := mustCreate(t, svc, "uid-1", "Ada", "Broken button", models.CategoryBugReport)

	_, err := svc.SetStatus(ctx, fb.ID, "NotAStatus")
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := svc.FindByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Equal(t, fb.UpdatedAt, stored.UpdatedAt)
}

func TestSetStatusNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.SetStatus(context.Background(), primitive.NewObjectID(), models.StatusClosed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetAdminResponseOverwrites(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	fb := mustCreate(t, svc, "uid-1", "Ada", "Broken button", models.CategoryBugReport)

	_, err := svc.SetAdminResponse(ctx, fb.ID, "Looking into it")
	require.NoError(t, err)

	updated, err := svc.SetAdminResponse(ctx, fb.ID, "Fixed in v2.1")
	require.NoError(t, err)
	assert.Equal(t, "Fixed in v2.1", updated.AdminResponse)
}

func TestAppendReplyIsAdditive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	fb := mustCreate(t, svc, "uid-1", "Ada", "Broken button", models.CategoryBugReport)

	_, err := svc.AppendReply(ctx, fb.ID, models.ReplyFromAdmin, "We are on it")
	require.NoError(t, err)

	updated, err := svc.AppendReply(ctx, fb.ID, models.ReplyFromUser, "Thanks!")
	require.NoError(t, err)

	require.Len(t, updated.Replies, 2)
	assert.Equal(t, models.ReplyFromAdmin, updated.Replies[0].From)
	assert.Equal(t, "We are on it", updated.Replies[0].Message)
	assert.Equal(t, models.ReplyFromUser, updated.Replies[1].From)
	assert.Equal(t, "Thanks!", updated.Replies[1].Message)
	assert.False(t, updated.Replies[1].Time.Before(updated.Replies[0].Time))
}

func TestAppendReplyValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	fb := mustCreate(t, svc, "uid-1", "Ada", "Broken button", models.CategoryBugReport)

	_, err := svc.AppendReply(ctx, fb.ID, "moderator", "hello")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AppendReply(ctx, fb.ID, models.ReplyFromUser, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := svc.FindByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Replies)
}

func TestApplySentiment(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	fb := mustCreate(t, svc, "uid-1", "Ada", "Love the new design", "")

	updated, err := svc.ApplySentiment(ctx, fb.ID, models.SentimentPositive, 0.9)
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, updated.Sentiment)
	assert.Equal(t, 0.9, updated.SentimentScore)

	_, err = svc.ApplySentiment(ctx, fb.ID, models.SentimentUnset, 0.5)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ApplySentiment(ctx, fb.ID, models.SentimentNegative, 1.5)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteThenFindNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	fb := mustCreate(t, svc, "uid-1", "Ada", "Remove me", "")

	require.NoError(t, svc.Delete(ctx, fb.ID))

	_, err := svc.FindByID(ctx, fb.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, fb.ID), ErrNotFound)
}

func TestFindersFilterAndOrderNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first := mustCreate(t, svc, "uid-1", "Ada", "first", "")
	second := mustCreate(t, svc, "uid-2", "Grace", "second", "")
	third := mustCreate(t, svc, "uid-1", "Ada", "third", "")

	_, err := svc.SetStatus(ctx, second.ID, models.StatusResolved)
	require.NoError(t, err)
	_, err = svc.ApplySentiment(ctx, third.ID, models.SentimentNegative, 0.2)
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	mine, err := svc.FindByUser(ctx, "uid-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	resolved, err := svc.FindByStatus(ctx, models.StatusResolved)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, second.ID, resolved[0].ID)

	negative, err := svc.FindBySentiment(ctx, models.SentimentNegative)
	require.NoError(t, err)
	require.Len(t, negative, 1)
	assert.Equal(t, third.ID, negative[0].ID)

	// unscored entries never show up under a real label
	neutral, err := svc.FindBySentiment(ctx, models.SentimentNeutral)
	require.NoError(t, err)
	assert.Empty(t, neutral)

	_, err = svc.FindByStatus(ctx, "NotAStatus")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConcurrentRepliesAreAllKept(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	fb := mustCreate(t, svc, "uid-1", "Ada", "busy thread", "")

	const replies = 50
	var wg sync.WaitGroup
	wg.Add(replies)
	for i := 0; i < replies; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AppendReply(ctx, fb.ID, models.ReplyFromUser, "ping")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := svc.FindByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Replies, replies)
}

func TestConcurrentOpsOnDifferentEntities(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a := mustCreate(t, svc, "uid-1", "Ada", "entity a", "")
	b := mustCreate(t, svc, "uid-2", "Grace", "entity b", "")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			_, err := svc.AppendReply(ctx, a.ID, models.ReplyFromUser, "a")
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			_, err := svc.AppendReply(ctx, b.ID, models.ReplyFromAdmin, "b")
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	storedA, err := svc.FindByID(ctx, a.ID)
	require.NoError(t, err)
	storedB, err := svc.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, storedA.Replies, 25)
	assert.Len(t, storedB.Replies, 25)
}
