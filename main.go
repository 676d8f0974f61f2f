package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	handler "github.com/verbaly/cefr-coach/adapters/http"
	"github.com/verbaly/cefr-coach/adapters/llm"
	"github.com/verbaly/cefr-coach/usecase"
	applog "github.com/verbaly/cefr-coach/utils/log"
)

func main() {
	gotenv.Load()

	completer, err := llm.NewOpenAIClient()
	if err != nil {
		log.Fatal("❌ Completion client misconfigured: ", err)
	}

	svc := usecase.NewChatService(completer)
	chatHandler := handler.NewChatHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	// Security middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit("1MB"))

	// CORS configuration for the chat widget
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // In production, specify exact origins
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
		AllowCredentials: true,
	}))

	api := e.Group("/api/v1")
	api.GET("/health", chatHandler.HealthCheck)
	api.POST("/chat", chatHandler.Chat)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Starting server on :" + port)
	log.Println("Available endpoints:")
	log.Println("  GET  /api/v1/health - Health check")
	log.Println("  POST /api/v1/chat   - Interview turn")
	if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// errorHandler shapes every framework-level failure (unknown route, wrong
// method, panic) as the {"error": ...} body the API promises. Internal
// detail goes to the logs only.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		applog.WithCtx(c.Request().Context()).Error("💥 Unhandled error", zap.Error(err))
		msg = http.StatusText(http.StatusInternalServerError)
	}

	if jsonErr := c.JSON(code, map[string]string{"error": msg}); jsonErr != nil {
		applog.WithCtx(c.Request().Context()).Error("Failed to write error response", zap.Error(jsonErr))
	}
}
