package contribution

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

// RegisterRoutes mounts /api/contributions. Reads are public;
// recording and adjusting are for admins and cooperative managers,
// deleting for admins only.
func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.Auth) {
	g := r.Group("/api/contributions")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("",
		auth.RequireAuth(),
		middleware.RequireRoles(account.RoleAdmin, account.RoleManager),
		h.Create,
	)
	g.PUT("/:id",
		auth.RequireAuth(),
		middleware.RequireRoles(account.RoleAdmin, account.RoleManager),
		h.Update,
	)
	g.DELETE("/:id",
		auth.RequireAuth(),
		middleware.RequireRoles(account.RoleAdmin),
		h.Delete,
	)
}

type createRequest struct {
	MemberID      string  `json:"memberId" binding:"required,uuid"`
	CooperativeID string  `json:"cooperativeId" binding:"required,uuid"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	co := &Contribution{
		MemberID:      uuid.MustParse(req.MemberID),
		CooperativeID: uuid.MustParse(req.CooperativeID),
		Amount:        req.Amount,
	}

	if err := h.store.Create(c.Request.Context(), co); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Contribution"))
		return
	}

	c.JSON(http.StatusCreated, co)
}

func (h *Handler) List(c *gin.Context) {
	contributions, err := h.store.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}
	c.JSON(http.StatusOK, contributions)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid contribution id"))
		return
	}

	co, err := h.store.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Contribution"))
		return
	}

	c.JSON(http.StatusOK, co)
}

type updateRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid contribution id"))
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	co, err := h.store.UpdateAmount(c.Request.Context(), id, req.Amount)
	if err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Contribution"))
		return
	}

	c.JSON(http.StatusOK, co)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid contribution id"))
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Contribution"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contribution deleted"})
}
