package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/service"
	resp "github.com/chubrika/wineo-back/internal/transport/http/response"
)

type FilterHandler struct {
	Svc *service.FilterService
	Log *zap.Logger
}

func (h *FilterHandler) Mount(public, admin *gin.RouterGroup) {
	public.GET("/filters", h.List)
	public.GET("/filters/by-category/:categoryId", h.ByCategory)
	admin.POST("/filters", h.Create)
	admin.PUT("/filters/:id", h.Update)
	admin.DELETE("/filters/:id", h.Delete)
}

type filterReq struct {
	Name            string   `json:"name" binding:"required"`
	Slug            string   `json:"slug"`
	Type            string   `json:"type" binding:"required,oneof=select range checkbox number text"`
	Options         []string `json:"options"`
	Unit            string   `json:"unit"`
	CategoryID      string   `json:"categoryId" binding:"required"`
	ApplyToChildren *bool    `json:"applyToChildren"`
	Required        *bool    `json:"required"`
	SortOrder       *int     `json:"sortOrder"`
	Active          *bool    `json:"active"`
}

func (h *FilterHandler) Create(c *gin.Context) {
	var in filterReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	f, err := h.Svc.Create(c.Request.Context(), service.FilterInput{
		Name: in.Name, Slug: in.Slug, Type: in.Type, Options: in.Options,
		Unit: in.Unit, CategoryID: in.CategoryID,
		ApplyToChildren: in.ApplyToChildren, Required: in.Required,
		SortOrder: in.SortOrder, Active: in.Active,
	})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.Created(c, f)
}

func (h *FilterHandler) List(c *gin.Context) {
	fs, err := h.Svc.List(c.Request.Context(), c.Query("categoryId"), c.Query("all") == "1")
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, fs)
}

// ByCategory resolves inheritance: the category's own filters plus any
// ancestor filter flagged applyToChildren.
func (h *FilterHandler) ByCategory(c *gin.Context) {
	fs, err := h.Svc.ForCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, fs)
}

func (h *FilterHandler) Update(c *gin.Context) {
	var in struct {
		Name            string   `json:"name"`
		Slug            string   `json:"slug"`
		Type            string   `json:"type" binding:"omitempty,oneof=select range checkbox number text"`
		Options         []string `json:"options"`
		Unit            string   `json:"unit"`
		ApplyToChildren *bool    `json:"applyToChildren"`
		Required        *bool    `json:"required"`
		SortOrder       *int     `json:"sortOrder"`
		Active          *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	f, err := h.Svc.Update(c.Request.Context(), c.Param("id"), service.FilterInput{
		Name: in.Name, Slug: in.Slug, Type: in.Type, Options: in.Options,
		Unit: in.Unit,
		ApplyToChildren: in.ApplyToChildren, Required: in.Required,
		SortOrder: in.SortOrder, Active: in.Active,
	})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, f)
}

func (h *FilterHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.NoContent(c)
}
