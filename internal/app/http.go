package app

import (
	"context"
	"net/http"

	"auth-bridge/internal/auth/provider/gotrue"
	"auth-bridge/internal/config"
	"auth-bridge/internal/flow"
	"auth-bridge/internal/handler"
	"auth-bridge/internal/logger"
	"auth-bridge/internal/middleware"
	"auth-bridge/internal/session"
	"auth-bridge/internal/sessionapi"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	idp, err := gotrue.New(cfg.ProviderURL, cfg.ProviderAnonKey)
	if err != nil {
		return nil, nil, err
	}

	var establisher flow.Establisher
	if cfg.SessionEndpointURL != "" {
		establisher, err = sessionapi.New(cfg.SessionEndpointURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using remote session endpoint", map[string]any{
			"url": cfg.SessionEndpointURL,
		})
	} else {
		establisher = session.NewIssuer(infra.Sessions, cfg.SessionTTL)
	}

	coordinator := flow.New(
		idp,
		establisher,
		flow.WithStateListener(func(s flow.State) {
			logger.Info("auth flow transition", map[string]any{
				"state": s.String(),
			})
		}),
	)

	authHandler := handler.NewHandler(
		coordinator,
		infra.Sessions,
		idp,
		handler.Options{
			SessionTTL:   cfg.SessionTTL,
			CookieSecure: cfg.CookieSecure,
			VerifyToken:  cfg.VerifySessionToken,
		},
	)

	authMiddleware := middleware.NewAuthMiddleware(infra.Sessions)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected Routes
	// ----------------------------

	web := router.Group("/")
	web.Use(middleware.GinRequireAuth(authMiddleware))

	web.GET("/dashboard", func(c *gin.Context) {
		email, _ := middleware.EmailFromContext(c.Request.Context())
		userID, _ := middleware.UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"email":   email,
			"user_id": userID,
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, infra.Close, nil
}
