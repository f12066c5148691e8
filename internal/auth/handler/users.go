package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/httperr"
	"github.com/UduakOkonah/coopconnect/internal/middleware"
)

func (h *Handler) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}
	c.JSON(http.StatusOK, account.Views(accounts))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid user id"))
		return
	}

	acct, err := h.accounts.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, httperr.FromStore(err, "User"))
		return
	}

	c.JSON(http.StatusOK, acct.Public())
}

type updateUserRequest struct {
	Name          *string `json:"name" binding:"omitempty"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Role          *string `json:"role" binding:"omitempty,oneof=user cooperativeManager admin"`
	CooperativeID *string `json:"cooperativeId" binding:"omitempty,uuid"`
}

// Update merges the allow-listed mutable fields. The role field only
// applies when the acting account is an admin; everyone else's role
// value is ignored, not rejected.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid user id"))
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	acct, err := h.accounts.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, httperr.FromStore(err, "User"))
		return
	}

	if req.Name != nil {
		acct.Name = *req.Name
	}
	if req.Email != nil {
		acct.Email = account.NormalizeEmail(*req.Email)
	}
	if req.CooperativeID != nil {
		coopID, err := uuid.Parse(*req.CooperativeID)
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("Invalid cooperative id"))
			return
		}
		acct.CooperativeID = uuid.NullUUID{UUID: coopID, Valid: true}
	}

	if req.Role != nil {
		actor, _ := middleware.CurrentAccount(c)
		if actor != nil && actor.Role == account.RoleAdmin {
			acct.Role = account.Role(*req.Role)
		}
	}

	if err := h.accounts.Update(c.Request.Context(), acct); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "User"))
		return
	}

	c.JSON(http.StatusOK, acct.Public())
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid user id"))
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "User"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
