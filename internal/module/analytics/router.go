package analytics

import (
	"campus-connect/internal/global/middleware"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleAnalytics) InitRouter(r *gin.RouterGroup) {
	analyticsGroup := r.Group("/analytics")

	analyticsGroup.Use(middleware.Auth(model.RoleMember))
	{
		analyticsGroup.GET("/event-types/:campusId", EventTypeDistribution)
		analyticsGroup.GET("/monthly-participation/:campusId", MonthlyParticipation)
		analyticsGroup.GET("/top-rated/:campusId", TopRatedEvents)
	}

	analyticsGroup.Use(middleware.Auth(model.RoleCampusLead))
	{
		analyticsGroup.GET("/export/:campusId", ExportReport)
	}
}
