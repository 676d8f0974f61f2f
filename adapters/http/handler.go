package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/verbaly/cefr-coach/domain"
	"github.com/verbaly/cefr-coach/usecase"
	"github.com/verbaly/cefr-coach/utils/log"
)

// Cookie lifetime in seconds; a session keeps its question set for an hour.
const variantCookieMaxAge = 3600

type ChatHandler struct {
	chatService *usecase.ChatService
}

func NewChatHandler(chatService *usecase.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	History []domain.ChatMessage `json:"history"`
	Message string               `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Chat runs one interview turn: resolve the variant cookie, hand the
// conversation to the chat service, map its errors onto the HTTP surface.
func (h *ChatHandler) Chat(c echo.Context) error {
	variant := h.resolveVariant(c)
	ctx := requestContext(c, variant)

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
	}

	reply, err := h.chatService.Respond(ctx, variant, req.History, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrNoInput) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "no input provided"})
		}
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			log.WithCtx(ctx).Error("❌ Upstream completion failed",
				zap.Int("status", upstream.StatusCode))
			return c.JSON(http.StatusBadGateway, errorResponse{
				Error:   "upstream completion failed",
				Details: upstream.Body,
			})
		}
		// Anything else becomes a generic 500 via the error handler.
		return err
	}

	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

// resolveVariant reuses a valid cefr_version cookie; otherwise it draws a
// fresh id and attaches the Set-Cookie header right away, so every response
// path of this request carries it.
func (h *ChatHandler) resolveVariant(c echo.Context) domain.Variant {
	if cookie, err := c.Cookie(domain.VariantCookie); err == nil {
		if variant, ok := domain.ParseVariant(cookie.Value); ok {
			return variant
		}
	}

	variant := domain.RandomVariant()
	c.SetCookie(&http.Cookie{
		Name:     domain.VariantCookie,
		Value:    variant.String(),
		Path:     "/",
		MaxAge:   variantCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
		Secure:   true,
	})
	return variant
}

func (h *ChatHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "cefr-coach",
	})
}

// requestContext carries the correlation fields utils/log.WithCtx reads.
func requestContext(c echo.Context, variant domain.Variant) context.Context {
	ctx := c.Request().Context()
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
		ctx = context.WithValue(ctx, "request_id", rid)
	}
	return context.WithValue(ctx, "cefr_version", variant.String())
}
