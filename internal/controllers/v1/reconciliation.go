package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/reconcile"
)

type ReconciliationResponse struct {
	Data  *reconcile.Result `json:"data"`  // The result of the run
	Error *string           `json:"error"` // The error, if any occurred
}

// RegisterReconciliationRoutes registers the routes for reconciliation with
// the RouterGroup that is passed.
func RegisterReconciliationRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsReconciliation)
		r.POST("", CreateReconciliation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Reconciliation
// @Success		204
// @Router			/v1/reconciliation [options]
func OptionsReconciliation(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Run the monthly reset
// @Description	Transfers the savings allocations of all due budgets into their linked goals and resets the spent counters. Budgets already processed this month are skipped, so calling this repeatedly is safe.
// @Tags			Reconciliation
// @Produce		json
// @Success		200	{object}	ReconciliationResponse
// @Failure		500	{object}	ReconciliationResponse
// @Router			/v1/reconciliation [post]
func CreateReconciliation(c *gin.Context) {
	result, err := reconcile.Process(models.DB, currentUser(c), time.Now())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ReconciliationResponse{Data: &result})
}
