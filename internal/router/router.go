package router

import (
	"fmt"
	"net/http"
	"time"

	"clap-go/internal/cache"
	"clap-go/internal/config"
	"clap-go/internal/handlers"
	"clap-go/internal/progress"
	"clap-go/internal/repository"
	"clap-go/internal/scoring"
	"clap-go/internal/services"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited", "message": "too many requests, try again later"})
}

func Setup(log *zap.Logger, db *gorm.DB, email *services.EmailService) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("clap_session", store))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(NonceMiddleware())
	router.Use(CSRFProtection())

	// Repositories and the scoring pipeline.
	users := repository.NewUsers(db)
	attempts := repository.NewAttempts(db)
	responses := repository.NewResponses(db)
	questions := repository.NewQuestions(db)
	answerKeys := repository.NewAnswerKeys(db)
	participants := repository.NewParticipants(db)

	statsCache := cache.New(time.Duration(config.Conf.Assessment.StatsCacheTTLMins) * time.Minute)
	stats := repository.NewStats(db, statsCache)

	engine := scoring.NewEngine(responses, questions, answerKeys)
	tracker := progress.NewTracker(attempts, responses, questions, engine, log)

	router.Use(UserLoaderMiddleware(users))

	// CSP for the rendered chart pages; echarts assets load from the
	// go-echarts CDN.
	router.Use(func(c *gin.Context) {
		nonce, _ := c.Get(CspNonceContextKey)
		csp := fmt.Sprintf(
			"script-src 'self' https://go-echarts.github.io 'unsafe-inline' 'nonce-%s'; style-src 'self' 'unsafe-inline'",
			nonce,
		)
		c.Header("Content-Security-Policy", csp)
		c.Next()
	})

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log, users)
	assessmentHandler := handlers.NewAssessmentHandler(log, tracker, attempts, questions, responses, email)
	resultsHandler := handlers.NewResultsHandler(log, attempts)
	adminHandler := handlers.NewAdminHandler(log, participants, attempts, questions, stats)
	userHandler := handlers.NewUserHandler(log, users)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.POST("/login", limiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)
	router.POST("/register", limiter, authHandler.Register)

	// Participant-facing attempt flow. Participants do not hold accounts;
	// they reach their attempt through its id.
	attemptRoutes := router.Group("/api/attempts")
	{
		attemptRoutes.POST("", assessmentHandler.Start)
		attemptRoutes.GET("/:id/question", assessmentHandler.CurrentQuestion)
		attemptRoutes.POST("/:id/answers", assessmentHandler.SubmitAnswer)
		attemptRoutes.POST("/:id/previous", assessmentHandler.PreviousQuestion)
		attemptRoutes.POST("/:id/reset", assessmentHandler.Reset)
		attemptRoutes.GET("/:id/report", resultsHandler.ShowReport)
		attemptRoutes.GET("/:id/report/chart", resultsHandler.ShowChart)
	}

	authorized := router.Group("/api")
	authorized.Use(AuthRequired())
	{
		adminRoutes := authorized.Group("/admin")
		{
			adminRoutes.POST("/organizations", adminHandler.CreateOrganization)
			adminRoutes.GET("/organizations", adminHandler.ListOrganizations)
			adminRoutes.PUT("/organizations/:id", adminHandler.UpdateOrganization)
			adminRoutes.DELETE("/organizations/:id", adminHandler.DeleteOrganization)
			adminRoutes.GET("/organizations/:id/stats", adminHandler.OrgStats)
			adminRoutes.POST("/organizations/:id/cohorts", adminHandler.CreateCohort)
			adminRoutes.GET("/organizations/:id/cohorts", adminHandler.ListCohorts)
			adminRoutes.POST("/participants", adminHandler.CreateParticipant)
			adminRoutes.GET("/cohorts/:id/participants", adminHandler.ListParticipants)
			adminRoutes.DELETE("/cohorts/:id", adminHandler.DeleteCohort)
			adminRoutes.PUT("/participants/:id", adminHandler.UpdateParticipant)
			adminRoutes.DELETE("/participants/:id", adminHandler.DeleteParticipant)
			adminRoutes.GET("/participants/:id/attempts", adminHandler.ParticipantAttempts)
			adminRoutes.GET("/assessments/:id/questions", adminHandler.ListQuestions)
		}

		profileRoutes := authorized.Group("/profile")
		{
			profileRoutes.GET("", userHandler.ShowProfile)
			profileRoutes.POST("/update-info", userHandler.UpdateInfo)
			profileRoutes.POST("/update-password", userHandler.UpdatePassword)
			profileRoutes.POST("/delete", userHandler.DeleteAccount)
		}
	}

	return router
}
