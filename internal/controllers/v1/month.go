package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/ledger"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/types"
)

type MonthResponse struct {
	Data  *ledger.Overview `json:"data"`  // Data for the month
	Error *string          `json:"error"` // The error, if any occurred
}

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMonth)
		r.GET("", GetMonth)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get data about a month
// @Description	Returns the aggregated budget numbers for a specific month. Defaults to the current month in the user's timezone.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	query		string	false	"The month in YYYY-MM format"
// @Router			/v1/months [get]
func GetMonth(c *gin.Context) {
	var query QueryMonth
	if err := c.Bind(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &e,
		})
		return
	}

	user := currentUser(c)

	month := types.MonthOf(time.Now().In(user.Location()))
	if query.Month != "" {
		var err error
		month, err = types.ParseMonth(query.Month)
		if err != nil {
			e := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, MonthResponse{
				Error: &e,
			})
			return
		}
	}

	overview, err := ledger.ForMonth(models.DB, user, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &overview})
}
