package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/repo"
	"github.com/chubrika/wineo-back/internal/service"
	mdw "github.com/chubrika/wineo-back/internal/transport/http/middleware"
	resp "github.com/chubrika/wineo-back/internal/transport/http/response"
)

type ListingHandler struct {
	Svc *service.ListingService
	Log *zap.Logger
}

func (h *ListingHandler) Mount(public, authed *gin.RouterGroup) {
	public.GET("/products", h.List)
	public.GET("/products/slug/:slug", h.GetBySlug)
	public.GET("/products/:id", h.Get)
	authed.GET("/products/mine", h.Mine)
	authed.POST("/products", h.Create)
	authed.PUT("/products/:id", h.Update)
	authed.DELETE("/products/:id", h.Delete)
}

type categorySnapshotReq struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
}

type locationReq struct {
	Region string `json:"region"`
	City   string `json:"city"`
}

type attributeReq struct {
	FilterID string `json:"filterId" binding:"required"`
	Value    string `json:"value"`
}

type listingCreateReq struct {
	Title              string              `json:"title" binding:"required"`
	Slug               string              `json:"slug"`
	Description        string              `json:"description" binding:"required"`
	Type               string              `json:"type" binding:"required,oneof=sell rent"`
	Category           categorySnapshotReq `json:"category"`
	Attributes         []attributeReq      `json:"attributes"`
	Price              *float64            `json:"price"`
	Currency           string              `json:"currency" binding:"omitempty,oneof=GEL USD"`
	PriceType          string              `json:"priceType" binding:"omitempty,oneof=fixed negotiable"`
	RentPeriod         string              `json:"rentPeriod"`
	Images             []string            `json:"images"`
	Thumbnail          string              `json:"thumbnail"`
	Specification      map[string]string   `json:"specification"`
	Location           locationReq         `json:"location"`
	PromotionType      string              `json:"promotionType"`
	PromotionExpiresAt *time.Time          `json:"promotionExpiresAt"`
	SEOTitle           string              `json:"seoTitle"`
	SEODescription     string              `json:"seoDescription"`
	TempImageKeys      []string            `json:"tempImageKeys"`
}

func attrsIn(in []attributeReq) []domain.Attribute {
	if in == nil {
		return nil
	}
	out := make([]domain.Attribute, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Attribute{FilterID: a.FilterID, Value: a.Value})
	}
	return out
}

func (h *ListingHandler) Create(c *gin.Context) {
	var in listingCreateReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), c.GetString(mdw.KeyUserID), service.ListingCreate{
		Title:              in.Title,
		Slug:               in.Slug,
		Description:        in.Description,
		Type:               in.Type,
		CategoryName:       in.Category.Name,
		CategorySlug:       in.Category.Slug,
		CategoryID:         in.Category.ID,
		Attributes:         attrsIn(in.Attributes),
		Price:              in.Price,
		Currency:           in.Currency,
		PriceType:          in.PriceType,
		RentPeriod:         in.RentPeriod,
		Images:             in.Images,
		Thumbnail:          in.Thumbnail,
		Specification:      in.Specification,
		Region:             in.Location.Region,
		City:               in.Location.City,
		PromotionType:      in.PromotionType,
		PromotionExpiresAt: in.PromotionExpiresAt,
		SEOTitle:           in.SEOTitle,
		SEODescription:     in.SEODescription,
		TempImageKeys:      in.TempImageKeys,
	})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.Created(c, l)
}

func (h *ListingHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	ls, total, err := h.Svc.List(c.Request.Context(), repo.ListQuery{
		Status:       c.Query("status"),
		Type:         c.Query("type"),
		CategorySlug: c.Query("categorySlug"),
		Skip:         skip,
		Limit:        limit,
	})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, gin.H{"total": total, "items": ls})
}

func (h *ListingHandler) Mine(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	ls, total, err := h.Svc.ListMine(c.Request.Context(), c.GetString(mdw.KeyUserID), skip, limit)
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, gin.H{"total": total, "items": ls})
}

func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, l)
}

func (h *ListingHandler) GetBySlug(c *gin.Context) {
	l, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, l)
}

type listingUpdateReq struct {
	Title              *string              `json:"title"`
	Slug               *string              `json:"slug"`
	Description        *string              `json:"description"`
	Type               *string              `json:"type" binding:"omitempty,oneof=sell rent"`
	Category           *categorySnapshotReq `json:"category"`
	Attributes         []attributeReq       `json:"attributes"`
	Price              *float64             `json:"price"`
	Currency           *string              `json:"currency" binding:"omitempty,oneof=GEL USD"`
	PriceType          *string              `json:"priceType" binding:"omitempty,oneof=fixed negotiable"`
	RentPeriod         *string              `json:"rentPeriod"`
	Images             []string             `json:"images"`
	Thumbnail          *string              `json:"thumbnail"`
	Specification      map[string]string    `json:"specification"`
	Location           *locationReq         `json:"location"`
	Status             *string              `json:"status" binding:"omitempty,oneof=active sold rented expired"`
	PromotionType      *string              `json:"promotionType"`
	PromotionExpiresAt *time.Time           `json:"promotionExpiresAt"`
	SEOTitle           *string              `json:"seoTitle"`
	SEODescription     *string              `json:"seoDescription"`
	TempImageKeys      []string             `json:"tempImageKeys"`
}

func (h *ListingHandler) Update(c *gin.Context) {
	var in listingUpdateReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	upd := service.ListingUpdate{
		Title:              in.Title,
		Slug:               in.Slug,
		Description:        in.Description,
		Type:               in.Type,
		Attributes:         attrsIn(in.Attributes),
		Price:              in.Price,
		Currency:           in.Currency,
		PriceType:          in.PriceType,
		RentPeriod:         in.RentPeriod,
		Images:             in.Images,
		Thumbnail:          in.Thumbnail,
		Specification:      in.Specification,
		Status:             in.Status,
		PromotionType:      in.PromotionType,
		PromotionExpiresAt: in.PromotionExpiresAt,
		SEOTitle:           in.SEOTitle,
		SEODescription:     in.SEODescription,
		TempImageKeys:      in.TempImageKeys,
	}
	if in.Category != nil {
		if in.Category.Name != "" {
			upd.CategoryName = &in.Category.Name
		}
		if in.Category.Slug != "" {
			upd.CategorySlug = &in.Category.Slug
		}
		upd.CategoryID = in.Category.ID
	}
	if in.Location != nil {
		if in.Location.Region != "" {
			upd.Region = &in.Location.Region
		}
		if in.Location.City != "" {
			upd.City = &in.Location.City
		}
	}
	l, err := h.Svc.Update(c.Request.Context(), c.GetString(mdw.KeyUserID), c.GetString(mdw.KeyRole), c.Param("id"), upd)
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, l)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.GetString(mdw.KeyUserID), c.GetString(mdw.KeyRole), c.Param("id"))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.NoContent(c)
}
