package campus

import (
	"campus-connect/internal/global/middleware"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCampus) InitRouter(r *gin.RouterGroup) {
	campusGroup := r.Group("/campuses")

	campusGroup.Use(middleware.Auth(model.RoleMember))
	{
		campusGroup.GET("", ListCampuses)
		campusGroup.GET("/:id", GetCampus)
	}

	campusGroup.Use(middleware.Auth(model.RoleCampusLead))
	{
		campusGroup.PUT("/:id", UpdateCampus)
	}

	campusGroup.Use(middleware.Auth(model.RoleAdmin))
	{
		campusGroup.POST("", CreateCampus)
	}
}
