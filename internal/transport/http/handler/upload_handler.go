package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/service"
	mdw "github.com/chubrika/wineo-back/internal/transport/http/middleware"
	resp "github.com/chubrika/wineo-back/internal/transport/http/response"
)

type UploadHandler struct {
	Pipe *service.ImagePipeline
	Log  *zap.Logger
}

func (h *UploadHandler) Mount(authed *gin.RouterGroup) {
	authed.POST("/uploads", h.Allocate)
}

type allocateReq struct {
	Count int `json:"count" binding:"required,min=1,max=20"`
}

// Allocate hands out presigned temp-prefix PUT slots; the client uploads
// directly to the object store and later passes the keys as
// tempImageKeys on listing create/update.
func (h *UploadHandler) Allocate(c *gin.Context) {
	var in allocateReq
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	slots, err := h.Pipe.AllocateSlots(c.Request.Context(), c.GetString(mdw.KeyUserID), in.Count)
	if err != nil {
		resp.Err(c, h.Log, err)
		return
	}
	resp.Created(c, gin.H{"slots": slots})
}
