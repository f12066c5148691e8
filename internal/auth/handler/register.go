package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/auth/credentials"
	"github.com/UduakOkonah/coopconnect/internal/httperr"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user cooperativeManager admin"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	// Registration is public, but an admin may register someone with
	// an elevated role. A missing or invalid token just means no actor.
	var actor *account.Account
	if header := c.GetHeader("Authorization"); header != "" {
		if acct, herr := h.auth.Authenticate(c.Request.Context(), header); herr == nil {
			actor = acct
		}
	}

	acct, err := h.credentials.Register(
		c.Request.Context(),
		req.Name,
		req.Email,
		req.Password,
		account.Role(req.Role),
		actor,
	)
	if err != nil {
		if errors.Is(err, credentials.ErrAlreadyRegistered) {
			httperr.Abort(c, httperr.DuplicateAccount())
			return
		}
		httperr.Abort(c, httperr.Server(err))
		return
	}

	tok, err := h.tokens.Issue(acct.ID.String(), string(acct.Role))
	if err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}

	log.Info().
		Str("user_id", acct.ID.String()).
		Str("role", string(acct.Role)).
		Msg("user registered")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    acct.Public(),
		"token":   tok,
	})
}
