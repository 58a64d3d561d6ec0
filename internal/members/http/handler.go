package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rdboard/rd-tracker-backend/internal/api/http/respond"
	"github.com/rdboard/rd-tracker-backend/internal/members/domain"
	"github.com/rdboard/rd-tracker-backend/internal/members/service"
)

// Handler bundles the dependencies for member HTTP endpoints.
type Handler struct {
	svc *service.MemberService
	log *zap.Logger
}

func New(svc *service.MemberService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// Register attaches member routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/validate", h.validate)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "member not found"})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "A member with this email already exists"})
	default:
		respond.Error(c, h.log, err)
	}
}

// list returns the directory, or the autocomplete matches when q is present.
func (h *Handler) list(c *gin.Context) {
	q, filtered := c.GetQuery("q")

	var (
		items []domain.Member
		err   error
	)
	if filtered {
		items, err = h.svc.Match(c.Request.Context(), q)
	} else {
		items, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "members", items)
}

func (h *Handler) validate(c *gin.Context) {
	name := c.Query("name")
	ok, err := h.svc.IsValidMember(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "valid": ok})
}

func (h *Handler) create(c *gin.Context) {
	var in domain.MemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "invalid body")
		return
	}

	m, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, "member", m)
}

func (h *Handler) update(c *gin.Context) {
	var in domain.MemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "invalid body")
		return
	}

	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "member", m)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
