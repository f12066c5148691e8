package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UduakOkonah/coopconnect/internal/auth/credentials"
	"github.com/UduakOkonah/coopconnect/internal/httperr"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	acct, err := h.credentials.Authenticate(
		c.Request.Context(),
		req.Email,
		req.Password,
	)
	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			httperr.Abort(c, httperr.InvalidCredentials())
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tok,
		"user":    acct.Public(),
	})
}
