package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketplan/backend/internal/advisor"
	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
)

// AdvisorEditable is the raw advisor output submitted for execution.
type AdvisorEditable struct {
	Text string `json:"text" example:"Let's lower the fun budget. [EDIT_BUDGET: Fun | | 150 | |]"` // Text containing command tokens
}

type AdvisorOutcomeResponse struct {
	Error *string          `json:"error" example:"no budget matches the name \"Groceriess\""` // The error, if any occurred for this command
	Data  *advisor.Outcome `json:"data"`                                                      // The outcome, if the command was applied
}

type AdvisorResponse struct {
	Error *string                  `json:"error" example:"either a text or a list of commands must be submitted"` // The error, if any occurred
	Data  []AdvisorOutcomeResponse `json:"data"`                                                                  // One entry per command token, in order
}

func (t *AdvisorResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, AdvisorOutcomeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	if status(err) > currentStatus {
		currentStatus = status(err)
	}

	return currentStatus
}

// RegisterAdvisorRoutes registers the routes for advisor commands with
// the RouterGroup that is passed.
func RegisterAdvisorRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/commands", OptionsAdvisorCommands)
		r.POST("/commands", CreateAdvisorCommands)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Advisor
// @Success		204
// @Router			/v1/advisor/commands [options]
func OptionsAdvisorCommands(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Execute advisor commands
// @Description	Parses the command tokens out of the submitted advisor text and applies them in order. The response code is the highest response code number that a single command would have caused. Commands after a failed one are still applied.
// @Tags			Advisor
// @Accept			json
// @Produce		json
// @Success		200		{object}	AdvisorResponse
// @Failure		400		{object}	AdvisorResponse
// @Failure		404		{object}	AdvisorResponse
// @Failure		500		{object}	AdvisorResponse
// @Param			text	body		AdvisorEditable	true	"Advisor output"
// @Router			/v1/advisor/commands [post]
func CreateAdvisorCommands(c *gin.Context) {
	var editable AdvisorEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AdvisorResponse{
			Error: &e,
		})
		return
	}

	if editable.Text == "" {
		e := errAdvisorBodyEmpty.Error()
		c.JSON(http.StatusBadRequest, AdvisorResponse{
			Error: &e,
		})
		return
	}

	commands, err := advisor.Parse(editable.Text)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, AdvisorResponse{
			Error: &e,
		})
		return
	}

	user := currentUser(c)
	dispatcher := advisor.Dispatcher{DB: models.DB}

	// The final http status. Will be modified when errors occur
	finalStatus := http.StatusOK
	r := AdvisorResponse{}

	for _, command := range commands {
		outcome, err := dispatcher.Apply(user, command)
		// Append the error
		if err != nil {
			finalStatus = r.appendError(err, finalStatus)
			continue
		}

		r.Data = append(r.Data, AdvisorOutcomeResponse{Data: &outcome})
	}

	c.JSON(finalStatus, r)
}
