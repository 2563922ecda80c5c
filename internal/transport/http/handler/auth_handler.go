package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/service"
	mdw "github.com/chubrika/wineo-back/internal/transport/http/middleware"
	resp "github.com/chubrika/wineo-back/internal/transport/http/response"
)

type AuthHandler struct {
	Svc *service.AuthService
	Log *zap.Logger
}

func (h *AuthHandler) Mount(public, authed *gin.RouterGroup) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	authed.GET("/auth/me", h.Me)
	authed.PATCH("/auth/me", h.UpdateMe)
}

type registerReq struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	AccountType  string `json:"accountType" binding:"omitempty,oneof=physical business"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	u, tok, err := h.Svc.Register(c.Request.Context(), service.RegisterInput{
		Email:        in.Email,
		Password:     in.Password,
		AccountType:  in.AccountType,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BusinessName: in.BusinessName,
		Phone:        in.Phone,
	})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.Created(c, gin.H{"token": tok, "user": u})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	u, tok, err := h.Svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, gin.H{"token": tok, "user": u})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Authenticate(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, u)
}

type profileReq struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	BusinessName *string `json:"businessName"`
	Phone        *string `json:"phone"`
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var in profileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(mdw.KeyUserID), service.ProfileUpdate{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BusinessName: in.BusinessName,
		Phone:        in.Phone,
	})
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.OK(c, u)
}
