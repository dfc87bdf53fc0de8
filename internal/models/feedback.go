package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category classifies what part of the product a feedback item is about.
type Category string

const (
	CategoryUIIssue          Category = "UI Issue"
	CategoryBugReport        Category = "Bug Report"
	CategoryFeatureRequest   Category = "Feature Request"
	CategoryGeneralFeedback  Category = "General Feedback"
	CategoryPerformanceIssue Category = "Performance Issue"
	CategoryOther            Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryUIIssue, CategoryBugReport, CategoryFeatureRequest,
		CategoryGeneralFeedback, CategoryPerformanceIssue, CategoryOther:
		return true
	}
	return false
}

// Status tracks where a feedback item is in the triage workflow. Admins may
// move an item between any two statuses; there is no transition table.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Sentiment is the label produced by the sentiment analyzer. SentimentUnset
// marks items the analyzer has not scored yet, so filters on "neutral" never
// pick up unscored entries.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentUnset    Sentiment = "unset"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentUnset:
		return true
	}
	return false
}

// ReplyOrigin identifies which side of the conversation a reply came from.
type ReplyOrigin string

const (
	ReplyFromAdmin ReplyOrigin = "admin"
	ReplyFromUser  ReplyOrigin = "user"
)

func (o ReplyOrigin) Valid() bool {
	return o == ReplyFromAdmin || o == ReplyFromUser
}

// Reply is a single threaded message attached to a feedback item.
type Reply struct {
	From    ReplyOrigin `json:"from" bson:"from"`
	Message string      `json:"message" bson:"message"`
	Time    time.Time   `json:"time" bson:"time"`
}

// Feedback is a single feedback submission and its full triage state.
// SentimentScore is only meaningful when Sentiment != SentimentUnset.
type Feedback struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserUID        string             `json:"userUid" bson:"userUid" validate:"required"`
	UserName       string             `json:"userName" bson:"userName" validate:"required"`
	FeedbackText   string             `json:"feedbackText" bson:"feedbackText" validate:"required"`
	Category       Category           `json:"category" bson:"category"`
	Status         Status             `json:"status" bson:"status"`
	Sentiment      Sentiment          `json:"sentiment" bson:"sentiment"`
	SentimentScore float64            `json:"sentimentScore" bson:"sentimentScore"`
	AdminResponse  string             `json:"adminResponse" bson:"adminResponse"`
	Replies        []Reply            `json:"replies" bson:"replies"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateFeedbackRequest struct {
	FeedbackText string `json:"feedbackText" validate:"required"`
	Category     string `json:"category,omitempty"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

type AdminResponseRequest struct {
	AdminResponse string `json:"adminResponse" validate:"required"`
}

type ReplyRequest struct {
	From    string `json:"from" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type AnalyzeRequest struct {
	Text string `json:"text" validate:"required"`
}

type AnalyzeBatchRequest struct {
	Texts []interface{} `json:"texts"`
}
