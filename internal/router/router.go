package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/examhall/examhall-backend/internal/config"
	"github.com/examhall/examhall-backend/internal/handler"
	"github.com/examhall/examhall-backend/internal/middleware"
	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Admin   *handler.AdminHandler
	Exam    *handler.ExamHandler
	Proctor *handler.ProctorHandler
	Events  *handler.EventsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

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
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve stored screenshot blobs for admin review.
	router.Static("/screenshots", cfg.ScreenshotDir)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for login routes (30 requests per minute per IP).
	loginLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	{
		adminAPI.POST("/login", loginLimiter.Middleware(), handlers.Admin.Login)

		authed := adminAPI.Group("")
		authed.Use(middleware.RequireAdminJWT(authService))
		{
			authed.POST("/change-password", handlers.Admin.ChangePassword)
			authed.POST("/add-student", handlers.Admin.AddStudent)
			authed.DELETE("/delete-student/:id", handlers.Admin.DeleteStudent)
			authed.GET("/students", handlers.Admin.ListStudents)
			authed.POST("/upload-questions", handlers.Admin.UploadQuestions)
			authed.GET("/questions", handlers.Admin.ListQuestions)
			authed.POST("/start-exam", handlers.Admin.StartExam)
			authed.POST("/stop-exam", handlers.Admin.StopExam)
			authed.GET("/exam-status", handlers.Admin.ExamStatus)
			authed.GET("/submissions", handlers.Admin.Submissions)
			authed.GET("/screenshots/:id", handlers.Admin.ListScreenshots)
		}
	}

	// ─── 2. Exam Group (student surface) ───────────────────────────────
	examAPI := router.Group("/api/v1/exam")
	{
		examAPI.POST("/student-login", loginLimiter.Middleware(), handlers.Exam.StudentLogin)
		examAPI.GET("/status", handlers.Exam.Status)

		authed := examAPI.Group("")
		authed.Use(
			middleware.RequireStudentJWT(authService),
			middleware.CheckStudentSession(authService),
		)
		{
			authed.GET("/questions", handlers.Exam.ListQuestions)
			authed.GET("/question/:id", handlers.Exam.GetQuestion)
			authed.POST("/answer", handlers.Exam.SubmitAnswer)
			authed.POST("/submit", handlers.Exam.Finish)
			authed.GET("/my-answers/:id", handlers.Exam.MyAnswers)
		}
	}

	// ─── 3. Proctor Group ──────────────────────────────────────────────
	proctorAPI := router.Group("/api/v1/proctor")
	proctorAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckStudentSession(authService),
	)
	{
		proctorAPI.POST("/screenshot", handlers.Proctor.UploadScreenshot)
	}

	// ─── 4. WebSocket Group (token via query param) ────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckStudentSession(authService),
	)
	{
		ws.GET("/exam/events", handlers.Events.ExamEventStream)
	}

	return router
}
