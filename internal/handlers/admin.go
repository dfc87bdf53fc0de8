package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/helpnexus/feedback-backend/internal/database"
	"github.com/helpnexus/feedback-backend/internal/models"
	"github.com/helpnexus/feedback-backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAdminStats returns basic aggregate counts for the dashboard
func GetAdminStats(c *fiber.Ctx) error {
	ctx := context.Background()
	usersCol := database.GetCollection("users")
	feedbacksCol := database.GetCollection("feedbacks")

	usersCount, _ := usersCol.CountDocuments(ctx, bson.M{})
	feedbacksCount, _ := feedbacksCol.CountDocuments(ctx, bson.M{})
	pendingCount, _ := feedbacksCol.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	resolvedCount, _ := feedbacksCol.CountDocuments(ctx, bson.M{"status": models.StatusResolved})
	positiveCount, _ := feedbacksCol.CountDocuments(ctx, bson.M{"sentiment": models.SentimentPositive})
	negativeCount, _ := feedbacksCol.CountDocuments(ctx, bson.M{"sentiment": models.SentimentNegative})

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"totalUsers":        usersCount,
			"totalFeedbacks":    feedbacksCount,
			"pendingFeedbacks":  pendingCount,
			"resolvedFeedbacks": resolvedCount,
			"positiveFeedbacks": positiveCount,
			"negativeFeedbacks": negativeCount,
		},
	})
}

// GetAllUsers returns a list of users with basic public fields
func GetAllUsers(c *fiber.Ctx) error {
	ctx := context.Background()
	col := database.GetCollection("users")

	// Query params
	pageStr := c.Query("page", "1")
	limitStr := c.Query("limit", "20")
	q := c.Query("q", "")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if q != "" {
		// search by email or display name (case-insensitive contains)
		filter = bson.M{"$or": []bson.M{
			{"email": bson.M{"$regex": q, "$options": "i"}},
			{"displayName": bson.M{"$regex": q, "$options": "i"}},
		}}
	}

	// Total count
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return utilsError(c)
	}

	// Pagination
	findOpts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOpts)
	if err != nil {
		return utilsError(c)
	}
	defer cursor.Close(ctx)

	var users []bson.M
	if err := cursor.All(ctx, &users); err != nil {
		return utilsError(c)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return c.JSON(fiber.Map{
		"users":      users,
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": totalPages,
	})
}

// GetAllFeedbacks returns feedback documents for the admin dashboard,
// newest first, with pagination and an optional createdAt date range.
func GetAllFeedbacks(c *fiber.Ctx) error {
	ctx := context.Background()
	col := database.GetCollection("feedbacks")

	// Query params
	pageStr := c.Query("page", "1")
	limitStr := c.Query("limit", "20")
	fromStr := c.Query("from", "") // ISO8601
	toStr := c.Query("to", "")     // ISO8601

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	// Date range filter
	if fromStr != "" || toStr != "" {
		createdAt := bson.M{}
		if fromStr != "" {
			if t, err := time.Parse(time.RFC3339, fromStr); err == nil {
				createdAt["$gte"] = t
			}
		}
		if toStr != "" {
			if t, err := time.Parse(time.RFC3339, toStr); err == nil {
				createdAt["$lte"] = t
			}
		}
		if len(createdAt) > 0 {
			filter["createdAt"] = createdAt
		}
	}

	// Total count
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return utilsError(c)
	}

	// Pagination options
	findOpts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOpts)
	if err != nil {
		return utilsError(c)
	}
	defer cursor.Close(ctx)

	feedbacks := []models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return utilsError(c)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return c.JSON(fiber.Map{
		"feedbacks":  feedbacks,
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": totalPages,
	})
}

// PromoteToAdmin grants the admin role to the user with the given email.
func PromoteToAdmin(c *fiber.Ctx) error {
	return changeRole(c, "admin")
}

// DemoteToUser revokes the admin role from the user with the given email.
func DemoteToUser(c *fiber.Ctx) error {
	return changeRole(c, "user")
}

func changeRole(c *fiber.Ctx, role string) error {
	var req models.RoleChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	col := database.GetCollection("users")
	result, err := col.UpdateOne(
		context.Background(),
		bson.M{"email": req.Email},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}},
	)
	if err != nil {
		return utilsError(c)
	}
	if result.MatchedCount == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{
		"message": "User " + req.Email + " is now a " + role,
	})
}

// Rescore runs the sentiment analyzer over every feedback entry that has no
// sentiment yet. A failure writing one entry does not stop the pass.
func (h *FeedbackHandler) Rescore(c *fiber.Ctx) error {
	ctx := context.Background()

	unscored, err := h.svc.FindBySentiment(ctx, models.SentimentUnset)
	if err != nil {
		return coreError(c, err)
	}

	scored, failed := 0, 0
	for _, fb := range unscored {
		result := h.analyzer.Analyze(fb.FeedbackText)
		if _, err := h.svc.ApplySentiment(ctx, fb.ID, result.Sentiment, result.Score); err != nil {
			log.Printf("Rescore failed for feedback %s: %v", fb.ID.Hex(), err)
			failed++
			continue
		}
		scored++
	}

	return c.JSON(fiber.Map{
		"scored": scored,
		"failed": failed,
	})
}

// utilsError provides a generic internal error response for admin endpoints
func utilsError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
