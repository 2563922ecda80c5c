package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/service"
	resp "github.com/chubrika/wineo-back/internal/transport/http/response"
)

type CityHandler struct {
	Svc *service.TaxonomyService
	Log *zap.Logger
}

func (h *CityHandler) Mount(public, admin *gin.RouterGroup) {
	public.GET("/cities", h.List)
	public.GET("/cities/:id", h.Get)
	admin.POST("/cities", h.Create)
	admin.PUT("/cities/:id", h.Update)
	admin.DELETE("/cities/:id", h.Delete)
}

type cityReq struct {
	Slug     string `json:"slug"`
	Label    string `json:"label" binding:"required"`
	RegionID string `json:"regionId" binding:"required"`
}

func (h *CityHandler) Create(c *gin.Context) {
	var in cityReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	city, err := h.Svc.CreateCity(c.Request.Context(), service.CityInput{Slug: in.Slug, Label: in.Label, RegionID: in.RegionID})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.Created(c, city)
}

func (h *CityHandler) List(c *gin.Context) {
	cities, err := h.Svc.ListCities(c.Request.Context(), c.Query("regionId"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, cities)
}

func (h *CityHandler) Get(c *gin.Context) {
	city, err := h.Svc.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, city)
}

func (h *CityHandler) Update(c *gin.Context) {
	var in struct {
		Slug     string `json:"slug"`
		Label    string `json:"label"`
		RegionID string `json:"regionId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	city, err := h.Svc.UpdateCity(c.Request.Context(), c.Param("id"), service.CityInput{Slug: in.Slug, Label: in.Label, RegionID: in.RegionID})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, city)
}

func (h *CityHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteCity(c.Request.Context(), c.Param("id")); err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.NoContent(c)
}
