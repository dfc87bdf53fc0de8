package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{
		CategoryUIIssue, CategoryBugReport, CategoryFeatureRequest,
		CategoryGeneralFeedback, CategoryPerformanceIssue, CategoryOther,
	} {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("Complaint").Valid())
	// enum values are exact strings, not case-insensitive
	assert.False(t, Category("bug report").Valid())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusResolved, StatusClosed} {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("NotAStatus").Valid())
	assert.False(t, Status("pending").Valid())
}

func TestSentimentValid(t *testing.T) {
	for _, s := range []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentUnset} {
		assert.True(t, s.Valid(), "sentiment %q", s)
	}
	assert.False(t, Sentiment("").Valid())
	assert.False(t, Sentiment("mixed").Valid())
}

func TestReplyOriginValid(t *testing.T) {
	assert.True(t, ReplyFromAdmin.Valid())
	assert.True(t, ReplyFromUser.Valid())
	assert.False(t, ReplyOrigin("").Valid())
	assert.False(t, ReplyOrigin("moderator").Valid())
}
