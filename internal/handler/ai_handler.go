package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartblog/internal/service"
)

// AIHandler handles the generative-text proxy endpoint.
type AIHandler struct {
	aiService service.AIService
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(aiService service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// GenerateRequest represents an AI generation request.
type GenerateRequest struct {
	Content string `json:"content" validate:"required,min=1"`
	Type    string `json:"type" validate:"required,oneof=summary grammar"`
}

// GenerateResponse represents an AI generation response.
type GenerateResponse struct {
	Result string `json:"result"`
	Type   string `json:"type"`
}

// Generate godoc
// @Summary Generate a summary or grammar fix for the given text
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateRequest true "Text and generation mode"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /ai/generate [post]
func (h *AIHandler) Generate(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req GenerateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.aiService.Generate(c.Request().Context(), req.Content, req.Type)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, GenerateResponse{
		Result: result,
		Type:   req.Type,
	})
}
