package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/helpnexus/feedback-backend/internal/feedback"
	"github.com/helpnexus/feedback-backend/internal/models"
	"github.com/helpnexus/feedback-backend/internal/sentiment"
	"github.com/helpnexus/feedback-backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackHandler exposes the feedback lifecycle over HTTP.
type FeedbackHandler struct {
	svc      *feedback.Service
	analyzer *sentiment.Analyzer
}

func NewFeedbackHandler(svc *feedback.Service, analyzer *sentiment.Analyzer) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, analyzer: analyzer}
}

// Submit creates a new feedback entry for the authenticated user and scores
// it synchronously. A scoring failure never loses the submission itself.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req models.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	userID, _ := c.Locals("userId").(string)
	user, err := currentUser(userID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	fb, err := h.svc.Create(context.Background(), user.ID.Hex(), user.DisplayName, req.FeedbackText, models.Category(req.Category))
	if err != nil {
		return coreError(c, err)
	}

	result := h.analyzer.Analyze(fb.FeedbackText)
	if scored, err := h.svc.ApplySentiment(context.Background(), fb.ID, result.Sentiment, result.Score); err == nil {
		fb = scored
	} else {
		log.Printf("Failed to apply sentiment to feedback %s: %v", fb.ID.Hex(), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"feedback": fb,
	})
}

// Mine returns the authenticated user's feedback, newest first.
func (h *FeedbackHandler) Mine(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)

	feedbacks, err := h.svc.FindByUser(context.Background(), userID)
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedbacks": feedbacks,
	})
}

// GetByID returns a single feedback entry.
func (h *FeedbackHandler) GetByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback ID")
	}

	fb, err := h.svc.FindByID(context.Background(), id)
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedback": fb,
	})
}

// AddReply appends a reply to a feedback thread. Only admins may post
// replies marked as coming from the admin side.
func (h *FeedbackHandler) AddReply(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback ID")
	}

	var req models.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	role, _ := c.Locals("role").(string)
	if models.ReplyOrigin(req.From) == models.ReplyFromAdmin && role != "admin" {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Admins only")
	}

	fb, err := h.svc.AppendReply(context.Background(), id, models.ReplyOrigin(req.From), req.Message)
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedback": fb,
	})
}

// Community returns every feedback entry, newest first. The community page
// is public and needs no authentication.
func (h *FeedbackHandler) Community(c *fiber.Ctx) error {
	feedbacks, err := h.svc.ListAll(context.Background())
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedbacks": feedbacks,
	})
}

// ByStatus returns all feedback in the given status (admin dashboard filter).
func (h *FeedbackHandler) ByStatus(c *fiber.Ctx) error {
	feedbacks, err := h.svc.FindByStatus(context.Background(), models.Status(c.Params("status")))
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedbacks": feedbacks,
	})
}

// BySentiment returns all feedback with the given sentiment label.
func (h *FeedbackHandler) BySentiment(c *fiber.Ctx) error {
	feedbacks, err := h.svc.FindBySentiment(context.Background(), models.Sentiment(c.Params("sentiment")))
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedbacks": feedbacks,
	})
}

// UpdateStatus overwrites the status of a feedback entry.
func (h *FeedbackHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback ID")
	}

	var req models.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	fb, err := h.svc.SetStatus(context.Background(), id, models.Status(req.Status))
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedback": fb,
	})
}

// SetResponse replaces the admin response on a feedback entry.
func (h *FeedbackHandler) SetResponse(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback ID")
	}

	var req models.AdminResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	fb, err := h.svc.SetAdminResponse(context.Background(), id, req.AdminResponse)
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedback": fb,
	})
}

// Delete permanently removes a feedback entry.
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback ID")
	}

	if err := h.svc.Delete(context.Background(), id); err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Feedback deleted successfully",
	})
}

// coreError maps lifecycle errors to HTTP responses. Unknown errors are
// reported to Sentry before a generic 500 goes out.
func coreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, feedback.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Feedback not found")
	case errors.Is(err, feedback.ErrValidation):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	sentry.CaptureException(err)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
}

// ErrorHandler is the app-level Fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if code >= fiber.StatusInternalServerError {
		sentry.CaptureException(err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
