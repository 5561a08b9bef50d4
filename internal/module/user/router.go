package user

import (
	"campus-connect/internal/global/middleware"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")

	authGroup.POST("/register", Register)
	authGroup.POST("/login", Login)

	authGroup.Use(middleware.Auth(model.RoleMember))
	{
		authGroup.GET("/me", GetMe)
		authGroup.POST("/change-password", ChangePassword)
	}
}
