package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Advisor        string `json:"advisor" example:"https://example.com/api/v1/advisor/commands"`  // URL of the advisor command endpoint
	Budgets        string `json:"budgets" example:"https://example.com/api/v1/budgets"`           // URL of Budget collection endpoint
	Export         string `json:"export" example:"https://example.com/api/v1/export"`             // URL of the export endpoint
	Goals          string `json:"goals" example:"https://example.com/api/v1/goals"`               // URL of goal collection endpoint
	Months         string `json:"months" example:"https://example.com/api/v1/months"`             // URL of Month endpoint
	Reconciliation string `json:"reconciliation" example:"https://example.com/api/v1/reconciliation"` // URL of the monthly reset endpoint
	Transactions   string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	Users          string `json:"users" example:"https://example.com/api/v1/users"`               // URL of User collection endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Advisor:        url + "/v1/advisor/commands",
			Budgets:        url + "/v1/budgets",
			Export:         url + "/v1/export",
			Goals:          url + "/v1/goals",
			Months:         url + "/v1/months",
			Reconciliation: url + "/v1/reconciliation",
			Transactions:   url + "/v1/transactions",
			Users:          url + "/v1/users",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
