package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printflow/printflow-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetCompanyID extracts the company ID from the Gin context
func GetCompanyID(c *gin.Context) *uuid.UUID {
	companyIDVal, exists := c.Get("company_id")
	if !exists {
		return nil
	}
	companyID, ok := companyIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &companyID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// paginationFromQuery reads page-based pagination from the query string
func paginationFromQuery(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
}

// parseIDParam parses a UUID path parameter, returning nil on bad input
func parseIDParam(c *gin.Context, name string) *uuid.UUID {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return nil
	}
	return &id
}
