package chat

import (
	"campus-connect/internal/global/middleware"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleChat) InitRouter(r *gin.RouterGroup) {
	chatGroup := r.Group("/chat")

	chatGroup.Use(middleware.Auth(model.RoleMember))
	{
		chatGroup.POST("", SendMessage)
		chatGroup.GET("/history/:userId", GetHistory)
	}
}
