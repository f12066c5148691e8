package cooperative

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/httperr"
	"github.com/UduakOkonah/coopconnect/internal/middleware"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts /api/cooperatives. Reads are public; creating
// and updating require a login, deleting requires admin.
func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.Auth) {
	g := r.Group("/api/cooperatives")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", auth.RequireAuth(), h.Create)
	g.PUT("/:id", auth.RequireAuth(), h.Update)
	g.DELETE("/:id",
		auth.RequireAuth(),
		middleware.RequireRoles(account.RoleAdmin),
		h.Delete,
	)
}

type createRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Location    string `json:"location"`
	Category    string `json:"category" binding:"omitempty,oneof=agriculture finance housing education other"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	if req.Category == "" {
		req.Category = CategoryOther
	}

	co := &Cooperative{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
	}

	if err := h.store.Create(c.Request.Context(), co); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Cooperative"))
		return
	}

	c.JSON(http.StatusCreated, co)
}

func (h *Handler) List(c *gin.Context) {
	coops, err := h.store.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}

	if c.Query("expand") == "members" {
		for i := range coops {
			members, err := h.store.MembersOf(c.Request.Context(), coops[i].ID)
			if err != nil {
				httperr.Abort(c, httperr.Server(err))
				return
			}
			coops[i].Members = members
		}
	}

	c.JSON(http.StatusOK, coops)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid cooperative id"))
		return
	}

	co, err := h.store.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Cooperative"))
		return
	}

	if c.Query("expand") == "members" {
		members, err := h.store.MembersOf(c.Request.Context(), co.ID)
		if err != nil {
			httperr.Abort(c, httperr.Server(err))
			return
		}
		co.Members = members
	}

	c.JSON(http.StatusOK, co)
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Location    *string `json:"location"`
	Category    *string `json:"category" binding:"omitempty,oneof=agriculture finance housing education other"`
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid cooperative id"))
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	co, err := h.store.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Cooperative"))
		return
	}

	if req.Name != nil {
		co.Name = *req.Name
	}
	if req.Description != nil {
		co.Description = *req.Description
	}
	if req.Location != nil {
		co.Location = *req.Location
	}
	if req.Category != nil {
		co.Category = *req.Category
	}

	if err := h.store.Update(c.Request.Context(), co); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Cooperative"))
		return
	}

	c.JSON(http.StatusOK, co)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid cooperative id"))
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Cooperative"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cooperative deleted successfully"})
}
