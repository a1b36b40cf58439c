package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/printflow/printflow-api/internal/infrastructure/repository"
	"github.com/printflow/printflow-api/internal/presentation/http/dto/response"
	"github.com/printflow/printflow-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. On success it sets
// the user and company identities in the Gin context and stamps the company
// scope onto the request context for the repositories.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("company_id", claims.CompanyID)

		if claims.CompanyID != uuid.Nil {
			ctx := infraRepo.WithCompany(c.Request.Context(), claims.CompanyID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// RequireCompany ensures a valid company context exists
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, exists := c.Get("company_id")
		if !exists {
			response.BadRequest(c, "Company context required")
			c.Abort()
			return
		}
		id, ok := companyID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid company context")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCompanyID retrieves the company ID from gin context
func GetCompanyID(c *gin.Context) uuid.UUID {
	companyID, exists := c.Get("company_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := companyID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
