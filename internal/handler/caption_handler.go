package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"conferencecaptions/internal/middleware"
	"conferencecaptions/internal/model"
	"conferencecaptions/internal/service"

	"github.com/gin-gonic/gin"
)

type CaptionGenerator interface {
	Generate(ctx context.Context, req model.CaptionRequest) (*service.Result, error)
}

type CaptionHandler struct {
	generator CaptionGenerator
}

func NewCaptionHandler(generator CaptionGenerator) *CaptionHandler {
	return &CaptionHandler{generator: generator}
}

// GetConferenceCaptions answers from the caption store when the event was
// seen before, otherwise asks the LLM and stores the result.
func (h *CaptionHandler) GetConferenceCaptions(c *gin.Context) {
	var body CaptionRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("invalid caption request body", "error", err, "request_id", middleware.GetRequestID(c))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Error: err.Error()})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), body.toModel())
	if err != nil {
		slog.Error("caption generation failed", "error", err, "theme", body.Theme, "request_id", middleware.GetRequestID(c))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "AI error", Error: err.Error()})
		return
	}

	if result.Source != model.SourceCache && result.Saved == nil {
		slog.Warn("LLM returned no captions", "theme", body.Theme, "request_id", middleware.GetRequestID(c))
	}

	c.JSON(http.StatusOK, NewCaptionsResponse(result))
}
