package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	coreauth "github.com/chubrika/wineo-back/internal/core/auth"
	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/service"
	"github.com/chubrika/wineo-back/internal/transport/http/handler"
	mdw "github.com/chubrika/wineo-back/internal/transport/http/middleware"
)

// Deps is everything the HTTP surface needs, constructed in main and
// injected here.
type Deps struct {
	Log      *zap.Logger
	JWTer    *coreauth.JWTer
	Auth     *service.AuthService
	Taxonomy *service.TaxonomyService
	Category *service.CategoryService
	Filter   *service.FilterService
	Listing  *service.ListingService
	Images   *service.ImagePipeline

	CORSOrigins []string
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	corsCfg := cors.DefaultConfig()
	if len(d.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = d.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(30*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.New(corsCfg),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// credential endpoints get a tighter per-client budget
	authPublic := api.Group("")
	authPublic.Use(mdw.RateLimitPerIP(5, 10))

	authed := api.Group("")
	authed.Use(mdw.AuthRequired(d.JWTer, d.Auth))

	admin := api.Group("")
	admin.Use(mdw.AuthRequired(d.JWTer, d.Auth), mdw.RequireRole(domain.RoleAdmin))

	(&handler.AuthHandler{Svc: d.Auth, Log: d.Log}).Mount(authPublic, authed)
	(&handler.RegionHandler{Svc: d.Taxonomy, Log: d.Log}).Mount(api, admin)
	(&handler.CityHandler{Svc: d.Taxonomy, Log: d.Log}).Mount(api, admin)
	(&handler.CategoryHandler{Svc: d.Category, Log: d.Log}).Mount(api, admin)
	(&handler.FilterHandler{Svc: d.Filter, Log: d.Log}).Mount(api, admin)
	(&handler.ListingHandler{Svc: d.Listing, Log: d.Log}).Mount(api, authed)
	(&handler.UploadHandler{Pipe: d.Images, Log: d.Log}).Mount(authed)

	return r
}
