package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/service"
	resp "github.com/chubrika/wineo-back/internal/transport/http/response"
)

type CategoryHandler struct {
	Svc *service.CategoryService
	Log *zap.Logger
}

func (h *CategoryHandler) Mount(public, admin *gin.RouterGroup) {
	public.GET("/categories", h.List)
	public.GET("/categories/slug/:slug", h.GetBySlug)
	public.GET("/categories/:id", h.Get)
	admin.POST("/categories", h.Create)
	admin.PUT("/categories/:id", h.Update)
	admin.DELETE("/categories/:id", h.Delete)
}

type categoryReq struct {
	Name     string  `json:"name" binding:"required"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parentId"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in categoryReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), service.CategoryInput{
		Name: in.Name, Slug: in.Slug, ParentID: in.ParentID,
	})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.Created(c, cat)
}

func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Svc.List(c.Request.Context())
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, cats)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var in struct {
		Name     string  `json:"name"`
		Slug     string  `json:"slug"`
		ParentID *string `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), c.Param("id"), service.CategoryInput{
		Name: in.Name, Slug: in.Slug, ParentID: in.ParentID,
	})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.NoContent(c)
}
