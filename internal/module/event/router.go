package event

import (
	"campus-connect/internal/global/middleware"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleEvent) InitRouter(r *gin.RouterGroup) {
	eventGroup := r.Group("/events")

	eventGroup.Use(middleware.Auth(model.RoleMember))
	{
		eventGroup.GET("/campus/:campusId", ListCampusEvents)
		eventGroup.GET("/campus/:campusId/range", ListEventsInRange)
		eventGroup.GET("/:id", GetEvent)
	}

	eventGroup.Use(middleware.Auth(model.RoleCampusLead))
	{
		eventGroup.POST("", CreateEvent)
		eventGroup.PUT("/:id", UpdateEvent)
		eventGroup.DELETE("/:id", DeleteEvent)
		eventGroup.POST("/images", UploadImage)
		eventGroup.POST("/images/presign", PresignImageUpload)
	}
}
