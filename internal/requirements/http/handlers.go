package http

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rdboard/rd-tracker-backend/internal/api/http/respond"
	"github.com/rdboard/rd-tracker-backend/internal/requirements/domain"
	"github.com/rdboard/rd-tracker-backend/internal/requirements/export"
	"github.com/rdboard/rd-tracker-backend/internal/validation"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "requirement not found"})
	case errors.Is(err, domain.ErrUnknownMember):
		respond.Error(c, h.log, validation.NewError("author_name", "Please select a valid team member"))
	default:
		respond.Error(c, h.log, err)
	}
}

func (h *Handler) list(c *gin.Context) {
	order, ok := domain.ParseListOrder(c.Query("order"))
	if !ok {
		respond.BadRequest(c, "order must be created_at or updated_at")
		return
	}

	var filter domain.StageFilter
	if v := strings.TrimSpace(c.Query("stage")); v != "" {
		stage, ok := domain.ParseStage(v)
		if !ok {
			respond.BadRequest(c, "unknown stage")
			return
		}
		filter = domain.NewStageFilter(stage)
	}

	items, err := h.svc.List(c.Request.Context(), order, filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "requirements", items)
}

func (h *Handler) create(c *gin.Context) {
	var in domain.CreateRequirementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "invalid body")
		return
	}

	req, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, "requirement", req)
}

func (h *Handler) get(c *gin.Context) {
	req, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "requirement", req)
}

func (h *Handler) update(c *gin.Context) {
	var in domain.UpdateDetailsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "invalid body")
		return
	}

	res, err := h.svc.UpdateDetails(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"requirement":   res.Requirement,
		"stage_changed": res.StageChanged,
		"history_entry": res.HistoryEntry,
	})
}

func (h *Handler) history(c *gin.Context) {
	items, err := h.svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "history", items)
}

func (h *Handler) listComments(c *gin.Context) {
	items, err := h.svc.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "comments", items)
}

type addCommentReq struct {
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
}

func (h *Handler) addComment(c *gin.Context) {
	var req addCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid body")
		return
	}

	cm, err := h.svc.AddComment(c.Request.Context(), domain.CreateCommentInput{
		RequirementID: c.Param("id"),
		AuthorName:    req.AuthorName,
		Content:       req.Content,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, "comment", cm)
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "stats", st)
}

func (h *Handler) chart(c *gin.Context) {
	series, err := h.svc.Chart(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "chart", series)
}

func (h *Handler) export(c *gin.Context) {
	// buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request.Context(), &buf); err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(time.Now())+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

type stageView struct {
	Name  domain.Stage `json:"name"`
	Color string       `json:"color"`
}

func (h *Handler) stages(c *gin.Context) {
	stages := domain.Stages()
	out := make([]stageView, 0, len(stages))
	for _, s := range stages {
		out = append(out, stageView{Name: s, Color: s.Color()})
	}
	respond.OK(c, http.StatusOK, "stages", out)
}
