package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/pocketplan/backend/internal/models"
	pp_uuid "github.com/pocketplan/backend/internal/uuid"
)

type URIID struct {
	ID pp_uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type QueryMonth struct {
	Month string `form:"month" example:"2024-07"` // Year and month
}

// Pagination contains information about the pagination
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// currentUser returns the user the request is scoped to. The middleware
// guarantees it is set on every route this is called from.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(string(models.DBContextUser)).(models.User)
}
