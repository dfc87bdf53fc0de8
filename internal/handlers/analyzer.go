package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/helpnexus/feedback-backend/internal/models"
	"github.com/helpnexus/feedback-backend/internal/sentiment"
	"github.com/helpnexus/feedback-backend/utils"
)

// AnalyzerHandler exposes the sentiment scorer over HTTP.
type AnalyzerHandler struct {
	analyzer *sentiment.Analyzer
}

func NewAnalyzerHandler(analyzer *sentiment.Analyzer) *AnalyzerHandler {
	return &AnalyzerHandler{analyzer: analyzer}
}

// Analyze scores a single text. Missing or non-string text is rejected
// before scoring.
func (h *AnalyzerHandler) Analyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Text is required and must be a string")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Text is required and must be a string")
	}

	result := h.analyzer.Analyze(req.Text)

	return c.JSON(fiber.Map{
		"text":      req.Text,
		"sentiment": result.Sentiment,
		"score":     result.Score,
		"details": fiber.Map{
			"positiveWords": result.PositiveWords,
			"negativeWords": result.NegativeWords,
			"totalWords":    result.TotalWords,
		},
	})
}

// AnalyzeBatch scores every item in the request independently. An item that
// is not a string yields an error entry in its slot; the remaining items
// are still scored.
func (h *AnalyzerHandler) AnalyzeBatch(c *fiber.Ctx) error {
	var req models.AnalyzeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Texts must be an array")
	}

	if req.Texts == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Texts must be an array")
	}

	results := make([]fiber.Map, 0, len(req.Texts))
	for _, item := range req.Texts {
		text, ok := item.(string)
		if !ok {
			results = append(results, fiber.Map{
				"error": "text must be a string",
			})
			continue
		}

		result := h.analyzer.Analyze(text)
		results = append(results, fiber.Map{
			"text":          text,
			"sentiment":     result.Sentiment,
			"score":         result.Score,
			"positiveWords": result.PositiveWords,
			"negativeWords": result.NegativeWords,
			"totalWords":    result.TotalWords,
		})
	}

	return c.JSON(fiber.Map{
		"results": results,
	})
}
