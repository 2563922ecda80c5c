package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/service"
	resp "github.com/chubrika/wineo-back/internal/transport/http/response"
)

type RegionHandler struct {
	Svc *service.TaxonomyService
	Log *zap.Logger
}

func (h *RegionHandler) Mount(public, admin *gin.RouterGroup) {
	public.GET("/regions", h.List)
	public.GET("/regions/:id", h.Get)
	admin.POST("/regions", h.Create)
	admin.PUT("/regions/:id", h.Update)
	admin.DELETE("/regions/:id", h.Delete)
}

type regionReq struct {
	Slug  string `json:"slug"`
	Label string `json:"label" binding:"required"`
}

func (h *RegionHandler) Create(c *gin.Context) {
	var in regionReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	reg, err := h.Svc.CreateRegion(c.Request.Context(), service.RegionInput{Slug: in.Slug, Label: in.Label})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.Created(c, reg)
}

func (h *RegionHandler) List(c *gin.Context) {
	regs, err := h.Svc.ListRegions(c.Request.Context())
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, regs)
}

func (h *RegionHandler) Get(c *gin.Context) {
	reg, err := h.Svc.GetRegion(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, reg)
}

func (h *RegionHandler) Update(c *gin.Context) {
	var in struct {
		Slug  string `json:"slug"`
		Label string `json:"label"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	reg, err := h.Svc.UpdateRegion(c.Request.Context(), c.Param("id"), service.RegionInput{Slug: in.Slug, Label: in.Label})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, reg)
}

func (h *RegionHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteRegion(c.Request.Context(), c.Param("id")); err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.NoContent(c)
}
