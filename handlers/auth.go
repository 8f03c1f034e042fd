package handlers

import (
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"campustrace/database"
	"campustrace/models"
	"campustrace/utils"
)

// Register creates a user account. Only addresses on the configured campus
// domain are accepted; an email whose local part starts with "admin" gets
// the admin role.
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if !utils.IsAllowedCollegeEmail(email, h.cfg.AllowedEmailDomain) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "use your college email address"})
		return
	}

	exists, err := h.service.UserExists(c.Request.Context(), email, req.StudentID)
	if err != nil {
		log.WithError(err).Error("failed to check user existence")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	role := models.RoleStudent
	if strings.HasPrefix(email, "admin") {
		role = models.RoleAdmin
	}

	user, err := h.service.CreateUser(c.Request.Context(), models.User{
		Name:      req.Name,
		Email:     email,
		StudentID: req.StudentID,
		Branch:    req.Branch,
		Year:      req.Year,
		Role:      role,
	}, string(passwordHash))
	if err != nil {
		log.WithError(err).Error("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	token, err := h.signer.Sign(user)
	if err != nil {
		log.WithError(err).Error("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Login checks credentials and hands out a bearer token.
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, passwordHash, err := h.service.GetUserByEmail(c.Request.Context(), utils.NormalizeEmail(req.Email))
	if err == database.ErrNotFound {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.signer.Sign(user)
	if err != nil {
		log.WithError(err).Error("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Me returns the authenticated user's profile.
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.GetString("user_id"))
	if err == database.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to load user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
