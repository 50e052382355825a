package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "papas_go_backend/internal/errors"
	"papas_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

func SetupRoutes(r *gin.Engine, users *services.UserService, jwtSecret string) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", registerHandler(users, jwtSecret))
		authGroup.POST("/login", loginHandler(users, jwtSecret))
		authGroup.GET("/user", Middleware(users, jwtSecret), getUser)
	}
}

// GenerateToken issues an HS256 JWT for a user, valid for 24 hours.
func GenerateToken(userID string, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies a token and returns the subject user ID.
func ValidateToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

// Middleware authenticates the bearer token and stores the user in the
// request context under "user".
func Middleware(users *services.UserService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header is required"})
			c.Abort()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid authorization header"})
			c.Abort()
			return
		}

		sub, err := ValidateToken(bearerToken[1], jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(sub)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token subject"})
			c.Abort()
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unknown user"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

type registerRequest struct {
	Username          string `json:"username" binding:"required"`
	Email             string `json:"email" binding:"required"`
	Password          string `json:"password" binding:"required"`
	PreferredLanguage string `json:"preferredLanguage"`
}

func registerHandler(users *services.UserService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Username, email and password are required"))
			return
		}

		user, err := users.Register(req.Username, req.Email, req.Password, req.PreferredLanguage)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		token, err := GenerateToken(user.ID.String(), jwtSecret)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    gin.H{"user": user, "token": token},
		})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(users *services.UserService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Email and password are required"))
			return
		}

		user, err := users.Login(req.Email, req.Password)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		token, err := GenerateToken(user.ID.String(), jwtSecret)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"user": user, "token": token},
		})
	}
}

func getUser(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		apperrors.HandleError(c, apperrors.New401Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}
