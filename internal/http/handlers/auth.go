package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	intdb "medtransport/internal/db"
	"medtransport/internal/domain/models"
	"medtransport/internal/http/middleware"
	"medtransport/internal/repositories"
	"medtransport/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = []byte("change-me")

// SetJWTSecret installs the signing key from configuration.
func SetJWTSecret(secret string) {
	if strings.TrimSpace(secret) != "" {
		jwtSecret = []byte(secret)
	}
}

// JWTSecret returns the active signing key (used by the auth middleware).
func JWTSecret() []byte {
	return jwtSecret
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepository{}
	user, hash, err := repo.GetByEmail(req.Email)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "email="+user.Email)
	c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		RespondError(c, http.StatusBadRequest, "name and email are required", nil)
		return
	}
	if len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}

	role := strings.TrimSpace(req.Role)
	if role != "admin" {
		role = "coordinator"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	repo := repositories.UserRepository{}
	id, err := repo.Insert(models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
		Role:  role,
	}, string(hash))
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			RespondError(c, http.StatusConflict, "an account with this email already exists", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}
