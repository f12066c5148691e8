package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/auth/credentials"
	"github.com/UduakOkonah/coopconnect/internal/auth/provider"
	"github.com/UduakOkonah/coopconnect/internal/auth/resolver"
	"github.com/UduakOkonah/coopconnect/internal/auth/token"
	"github.com/UduakOkonah/coopconnect/internal/middleware"
	"github.com/UduakOkonah/coopconnect/internal/oauthstate"
)

// Handler owns the /api/users and /auth/:provider surface: local
// registration and login, user CRUD, and the external OAuth flow.
type Handler struct {
	credentials *credentials.Service
	tokens      *token.Service
	accounts    *account.Store
	providers   *provider.Registry
	resolver    resolver.Resolver
	flows       oauthstate.Store
	auth        *middleware.Auth

	// frontendURL, when set, makes the OAuth callback redirect with
	// ?token= instead of returning JSON.
	frontendURL string
}

func NewHandler(
	credentialService *credentials.Service,
	tokens *token.Service,
	accounts *account.Store,
	registry *provider.Registry,
	identityResolver resolver.Resolver,
	flows oauthstate.Store,
	auth *middleware.Auth,
	frontendURL string,
) *Handler {
	return &Handler{
		credentials: credentialService,
		tokens:      tokens,
		accounts:    accounts,
		providers:   registry,
		resolver:    identityResolver,
		flows:       flows,
		auth:        auth,
		frontendURL: frontendURL,
	}
}

// RegisterRoutes mounts the user and auth routes on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/auth/:provider", h.OAuthLogin)
	r.GET("/auth/:provider/callback", h.OAuthCallback)

	users := r.Group("/api/users")
	users.POST("", h.Register)
	users.POST("/login", h.Login)

	users.GET("",
		h.auth.RequireAuth(),
		middleware.RequireRoles(account.RoleAdmin),
		h.List,
	)
	users.GET("/:id",
		h.auth.RequireAuth(),
		middleware.RequireRoles(account.RoleAdmin, account.RoleManager),
		h.Get,
	)
	users.PUT("/:id",
		h.auth.RequireAuth(),
		h.Update,
	)
	users.DELETE("/:id",
		h.auth.RequireAuth(),
		middleware.RequireRoles(account.RoleAdmin),
		h.Delete,
	)
}
