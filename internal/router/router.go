package router

import (
	"strings"
	"time"

	"github.com/edutrack/edutrack-backend/internal/config"
	"github.com/edutrack/edutrack-backend/internal/handler"
	"github.com/edutrack/edutrack-backend/internal/middleware"
	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Room for the text fields of a multipart form on top of the file itself.
const formOverheadBytes = 1 << 20

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Assignment *handler.AssignmentHandler
	Submission *handler.SubmissionHandler
	Student    *handler.StudentHandler
	File       *handler.FileHandler
	Health     *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	auth middleware.Authenticator,
	authLimiter middleware.Limiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request logger can tag every line with it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Stored files are mostly already compressed (pdf, docx, images).
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper: func(c *gin.Context) bool {
			return strings.HasPrefix(c.Request.URL.Path, "/uploads/")
		},
	}))

	// Uploaded files are served from the store with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.GET("/:name", handlers.File.Download)
	}

	router.GET("/health", handlers.Health.Health)

	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	authAPI := api.Group("/auth")
	{
		authAPI.POST("/signup", middleware.RateLimit(authLimiter, log), handlers.Auth.Signup)
		authAPI.POST("/login", middleware.RateLimit(authLimiter, log), handlers.Auth.Login)
		authAPI.POST("/logout", handlers.Auth.Logout)
		authAPI.GET("/me", middleware.RequireAuth(auth), handlers.Auth.Me)
	}

	requireTeacher := middleware.RequireRole(model.RoleTeacher)
	requireStudent := middleware.RequireRole(model.RoleStudent)
	uploadLimit := middleware.LimitBody(cfg.MaxUploadBytes + formOverheadBytes)

	// ─── 2. Assignments ────────────────────────────────────────────────
	assignments := api.Group("/assignments")
	assignments.Use(middleware.RequireAuth(auth))
	{
		assignments.POST("", requireTeacher, uploadLimit, handlers.Assignment.Create)
		assignments.GET("", handlers.Assignment.List)
		assignments.GET("/teacher", requireTeacher, handlers.Assignment.ListTeacher)
		assignments.GET("/:id/submissions", requireTeacher, handlers.Assignment.Submissions)
		assignments.DELETE("/:id", requireTeacher, handlers.Assignment.Delete)
	}

	// ─── 3. Submissions ────────────────────────────────────────────────
	submissions := api.Group("/submissions")
	submissions.Use(middleware.RequireAuth(auth))
	{
		submissions.POST("", requireStudent, uploadLimit, handlers.Submission.Create)
		submissions.GET("/my", requireStudent, handlers.Submission.My)
		submissions.GET("/teacher", requireTeacher, handlers.Submission.Teacher)
		submissions.GET("/assignment/:id", requireTeacher, handlers.Submission.ForAssignment)
	}

	// ─── 4. Students ───────────────────────────────────────────────────
	students := api.Group("/students")
	students.Use(middleware.RequireAuth(auth), requireStudent)
	{
		students.GET("/profile", handlers.Student.Profile)
	}

	return router
}
