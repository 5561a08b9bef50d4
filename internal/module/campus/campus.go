package campus

import (
	"strconv"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/response"
	"campus-connect/internal/global/sentry/tracing"
	"campus-connect/internal/model"
	"campus-connect/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// ListCampuses returns every campus.
func ListCampuses(c *gin.Context) {
	ctx := tracing.ContextWithSpan(c)
	campuses, err := database.Store.ListCampuses(ctx)
	if err != nil {
		log.Error("listing campuses failed", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, campuses)
}

// GetCampus returns one campus by id.
func GetCampus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := tracing.ContextWithSpan(c)
	campus, err := database.Store.GetCampus(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("campus not found"))
		return
	case err != nil:
		log.Error("campus lookup failed", "error", err, "campus_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, campus)
}

// CreateCampusReq carries a new campus.
type CreateCampusReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	BannerURL   string `json:"bannerUrl"`
	MemberCount int    `json:"memberCount" binding:"omitempty,gte=0"`
}

// CreateCampus registers a new campus tenant.
func CreateCampus(c *gin.Context) {
	var req CreateCampusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("binding create campus request failed", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	campus := model.Campus{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		BannerURL:   req.BannerURL,
		MemberCount: req.MemberCount,
	}

	ctx := tracing.ContextWithSpan(c)
	if err := database.Store.CreateCampus(ctx, &campus); err != nil {
		log.Error("creating campus failed", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("campus created", "campus_id", campus.ID, "name", campus.Name)

	response.Created(c, campus)
}

// UpdateCampusReq is a partial update; nil fields stay untouched.
type UpdateCampusReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl"`
	BannerURL   *string `json:"bannerUrl"`
	MemberCount *int    `json:"memberCount" binding:"omitempty,gte=0"`
}

// UpdateCampus merges the provided fields over the stored campus.
func UpdateCampus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCampusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("binding update campus request failed", "error", err, "campus_id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	ctx := tracing.ContextWithSpan(c)
	campus, err := database.Store.UpdateCampus(ctx, id, store.CampusUpdate{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		BannerURL:   req.BannerURL,
		MemberCount: req.MemberCount,
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("campus not found"))
		return
	case err != nil:
		log.Error("updating campus failed", "error", err, "campus_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("campus updated", "campus_id", campus.ID)

	response.Success(c, campus)
}
