package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/config"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/handler"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/middleware"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/token"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Cfg       config.Config
	Codec     *token.Codec
	Users     middleware.UserLoader
	Auth      *handler.AuthHandler
	Vocab     *handler.VocabularyHandler
	Levels    *handler.LevelHandler
	Progress  *handler.ProgressHandler
	Exercises *handler.ExerciseHandler
	RDB       *redis.Client
}

// Register wires up the full /api/v1 surface. Read-only content endpoints
// additionally go through the Redis response cache; the whole API sits
// behind the token-bucket rate limiter when Redis is available.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	if len(d.Cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: d.Cfg.CORSOrigins}))
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.RDB))

	v1 := e.Group("/api/v1")

	// Unauthenticated auth surface. Refresh reads the refresh token from
	// the Authorization header itself, so it lives outside JWTAuth.
	auth := v1.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)

	// Everything below requires a valid access token.
	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(d.Codec, d.Users))

	authed.POST("/auth/logout", d.Auth.Logout)
	authed.POST("/auth/logout-all", d.Auth.LogoutAll)
	authed.GET("/auth/me", d.Auth.Me)

	// Content surface; GET responses are cacheable because they do not
	// vary by user.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.RDB)
	authed.GET("/years", d.Levels.Years, cache)
	authed.GET("/vocabulary", d.Vocab.List, cache)
	authed.GET("/vocabulary/:id", d.Vocab.Get, cache)
	authed.GET("/flashcards", d.Vocab.Flashcards, cache)

	admin := middleware.RequireAdmin()
	authed.POST("/vocabulary", d.Vocab.Create, admin)
	authed.PUT("/vocabulary/:id", d.Vocab.Update, admin)
	authed.DELETE("/vocabulary/:id", d.Vocab.Delete, admin)

	authed.GET("/progress", d.Progress.Summary)
	authed.GET("/progress/mastered", d.Progress.Mastered)
	authed.POST("/progress/mastered", d.Progress.MarkMastered)
	authed.DELETE("/progress/mastered/:id", d.Progress.UnmarkMastered)
	authed.POST("/progress/practice", d.Progress.RecordPractice)

	authed.POST("/quiz/generate", d.Exercises.GenerateQuiz)
	authed.POST("/quiz/submit", d.Exercises.SubmitQuiz)
	authed.POST("/sentences/generate", d.Exercises.GenerateSentences)
	authed.POST("/sentences/submit", d.Exercises.SubmitSentences)
}
