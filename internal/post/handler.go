package post

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

// RegisterRoutes mounts /api/posts. Reads are public; writing is for
// admins and cooperative managers, deleting for admins only.
func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.Auth) {
	g := r.Group("/api/posts")
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
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	CooperativeID string `json:"cooperativeId" binding:"required,uuid"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	// The author is the authenticated caller, not a body field.
	actor, ok := middleware.CurrentAccount(c)
	if !ok {
		httperr.Abort(c, httperr.Unauthorized(""))
		return
	}

	coopID, err := uuid.Parse(req.CooperativeID)
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid cooperative id"))
		return
	}

	p := &Post{
		Title:         req.Title,
		Content:       req.Content,
		AuthorID:      actor.ID,
		CooperativeID: coopID,
	}

	if err := h.store.Create(c.Request.Context(), p); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Post"))
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) List(c *gin.Context) {
	posts, err := h.store.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid post id"))
		return
	}

	p, err := h.store.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Post"))
		return
	}

	c.JSON(http.StatusOK, p)
}

type updateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid post id"))
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, httperr.FromBinding(err))
		return
	}

	p, err := h.store.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Post"))
		return
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}

	if err := h.store.Update(c.Request.Context(), p); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Post"))
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Invalid post id"))
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, httperr.FromStore(err, "Post"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
