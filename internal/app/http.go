package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/auth/credentials"
	"github.com/UduakOkonah/coopconnect/internal/auth/handler"
	"github.com/UduakOkonah/coopconnect/internal/auth/provider"
	"github.com/UduakOkonah/coopconnect/internal/auth/provider/google"
	"github.com/UduakOkonah/coopconnect/internal/auth/resolver"
	"github.com/UduakOkonah/coopconnect/internal/auth/token"
	"github.com/UduakOkonah/coopconnect/internal/config"
	"github.com/UduakOkonah/coopconnect/internal/contribution"
	"github.com/UduakOkonah/coopconnect/internal/cooperative"
	"github.com/UduakOkonah/coopconnect/internal/middleware"
	"github.com/UduakOkonah/coopconnect/internal/oauthstate"
	"github.com/UduakOkonah/coopconnect/internal/post"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	accountStore := account.NewStore(infra.DB)
	credentialService := credentials.NewService(accountStore)
	identityResolver := resolver.NewDBResolver(accountStore)
	flowStore := oauthstate.NewRedisStore(infra.Redis.Client)

	tokenService, err := token.NewService(cfg.JWTSecret, token.DefaultTTL)
	if err != nil {
		return nil, nil, err
	}

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)

	authMiddleware := middleware.NewAuth(tokenService, accountStore)

	authHandler := handler.NewHandler(
		credentialService,
		tokenService,
		accountStore,
		registry,
		identityResolver,
		flowStore,
		authMiddleware,
		cfg.FrontendURL,
	)

	cooperativeHandler := cooperative.NewHandler(cooperative.NewStore(infra.DB))
	postHandler := post.NewHandler(post.NewStore(infra.DB))
	contributionHandler := contribution.NewHandler(contribution.NewStore(infra.DB))

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(requestLog())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
	}))

	authHandler.RegisterRoutes(router)
	cooperativeHandler.RegisterRoutes(router, authMiddleware)
	postHandler.RegisterRoutes(router, authMiddleware)
	contributionHandler.RegisterRoutes(router, authMiddleware)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Welcome to the CoopConnect API",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}

// requestLog emits one structured line per request.
func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
