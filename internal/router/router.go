package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/config"
	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/handlers"
	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
}

// Setup wires middleware, handlers and routes into a gin engine.
func Setup(log *zap.Logger, schema *models.FormSchema, p handlers.Predictor) *gin.Engine {
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
		MaxAge:   0, // Session cookie: history lives only as long as the browser session
	})
	router.Use(sessions.Sessions("cardiosession", store))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(SessionIDMiddleware())
	router.Use(CSRFProtection())

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

	router.Static("/assets", "./assets")
	router.GET("/", func(c *gin.Context) {
		c.File("./assets/index.html")
	})

	// Handlers and routes
	historyCfg := config.Conf.History
	assessmentHandler := handlers.NewAssessmentHandler(log, p, historyCfg.Capacity, historyCfg.SessionKey)
	historyHandler := handlers.NewHistoryHandler(log, historyCfg.Capacity, historyCfg.SessionKey)
	formHandler := handlers.NewFormHandler(log, schema)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 20,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.GET("/form", formHandler.Schema)
		api.POST("/assess", limiter, assessmentHandler.Submit)

		historyRoutes := api.Group("/history")
		{
			historyRoutes.GET("", historyHandler.List)
			historyRoutes.GET("/chart", historyHandler.Chart)
			historyRoutes.DELETE("", historyHandler.Clear)
		}
	}

	return router
}
