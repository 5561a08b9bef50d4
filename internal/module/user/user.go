package user

import (
	"strings"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/global/sentry/tracing"
	"campus-connect/internal/model"
	"campus-connect/internal/store"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// LoginReq carries the credentials of a login attempt.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and hands out an access token.
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("binding login request failed", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	ctx := tracing.ContextWithSpan(c)
	user, err := database.Store.GetUserByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Same response as a wrong password so probes cannot enumerate
		// accounts.
		log.Warn("login for unknown email", "email", req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	case err != nil:
		log.Error("user lookup failed", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("wrong password", "email", req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("user logged in", "user_id", user.ID, "role", user.Role)

	response.Success(c, gin.H{
		"token": jwt.CreateToken(jwt.Payload{
			UserID: user.ID,
			Role:   user.Role,
		}),
		"user": user,
	})
}

// validatePasswordStrength rejects passwords without a letter, a digit and a
// special character, or shorter than 8 characters.
func validatePasswordStrength(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hasLetter := false
	hasDigit := false
	hasSpecial := false
	specialChars := "!@#$%^&*-"

	for _, char := range password {
		switch {
		case strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ", char):
			hasLetter = true
		case strings.ContainsRune("0123456789", char):
			hasDigit = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasLetter {
		return errors.New("password must contain at least one letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}
	if !hasSpecial {
		return errors.New("password must contain at least one special character (!@#$%^&*-)")
	}

	return nil
}

// RegisterReq carries a new account.
type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	CampusID *uint  `json:"campusId"`
}

// Register creates a member account with a bcrypt-hashed password.
func Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("binding register request failed", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := validatePasswordStrength(req.Password); err != nil {
		log.Warn("weak password rejected", "email", req.Email)
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}

	ctx := tracing.ContextWithSpan(c)
	_, err := database.Store.GetUserByEmail(ctx, req.Email)
	if err == nil {
		log.Warn("email already registered", "email", req.Email)
		response.Fail(c, response.ErrAlreadyExists.WithTips("email already registered"))
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("user lookup failed", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	user := model.User{
		Email:    req.Email,
		Password: tools.PasswordEncrypt(req.Password),
		Name:     req.Name,
		Role:     model.RoleMember,
		CampusID: req.CampusID,
	}

	if err := database.Store.CreateUser(ctx, &user); err != nil {
		log.Error("creating user failed", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("user registered", "user_id", user.ID, "email", user.Email)

	response.Created(c, user)
}

// GetMe returns the authenticated user's profile.
func GetMe(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	ctx := tracing.ContextWithSpan(c)
	user, err := database.Store.GetUser(ctx, payload.UserID)
	if err != nil {
		log.Error("user lookup failed", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, user)
}

// ChangePasswordReq carries a password rotation.
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword verifies the old password before storing the new hash.
func ChangePassword(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("binding change-password request failed", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := validatePasswordStrength(req.NewPassword); err != nil {
		log.Warn("weak password rejected", "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}

	ctx := tracing.ContextWithSpan(c)
	user, err := database.Store.GetUser(ctx, payload.UserID)
	if err != nil {
		log.Error("user lookup failed", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		log.Warn("wrong old password", "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	if err := database.Store.UpdateUserPassword(ctx, user.ID, tools.PasswordEncrypt(req.NewPassword)); err != nil {
		log.Error("updating password failed", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("password changed", "user_id", user.ID)

	response.Success(c)
}
