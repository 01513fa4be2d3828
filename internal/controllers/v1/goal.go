package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterSavingsGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func RegisterSavingsGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSavingsGoals)
		r.GET("", GetSavingsGoals)
		r.POST("", CreateSavingsGoals)
	}

	// Goal with ID
	{
		r.OPTIONS("/:id", OptionsSavingsGoalDetail)
		r.GET("/:id", GetSavingsGoal)
		r.PATCH("/:id", UpdateSavingsGoal)
		r.DELETE("/:id", DeleteSavingsGoal)
	}

	// Contributions
	{
		r.OPTIONS("/:id/funds", OptionsSavingsGoalFunds)
		r.POST("/:id/funds", AddSavingsGoalFunds)
		r.OPTIONS("/:id/progress", OptionsSavingsGoalProgress)
		r.GET("/:id/progress", GetSavingsGoalProgress)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingsGoals
// @Success		204
// @Router			/v1/goals [options]
func OptionsSavingsGoals(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingsGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [options]
func OptionsSavingsGoalDetail(c *gin.Context) {
	_, err := goalFromParam(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingsGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id}/funds [options]
func OptionsSavingsGoalFunds(c *gin.Context) {
	_, err := goalFromParam(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingsGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id}/progress [options]
func OptionsSavingsGoalProgress(c *gin.Context) {
	_, err := goalFromParam(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// goalFromParam loads the goal the :id URL parameter references, scoped to
// the requesting user.
func goalFromParam(c *gin.Context) (models.SavingsGoal, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.SavingsGoal{}, err
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID, currentUser(c).ID).Error
	if err != nil {
		return models.SavingsGoal{}, err
	}

	return goal, nil
}

// @Summary		Create goals
// @Description	Creates savings goals from the list of submitted goal data. The response code is the highest response code number that a single goal creation would have caused. If it is not equal to 201, at least one goal has an error.
// @Tags			SavingsGoals
// @Produce		json
// @Success		201		{object}	SavingsGoalCreateResponse
// @Failure		400		{object}	SavingsGoalCreateResponse
// @Failure		404		{object}	SavingsGoalCreateResponse
// @Failure		500		{object}	SavingsGoalCreateResponse
// @Param			goals	body		[]SavingsGoalEditable	true	"Goals"
// @Router			/v1/goals [post]
func CreateSavingsGoals(c *gin.Context) {
	var editables []SavingsGoalEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalCreateResponse{
			Error: &e,
		})
		return
	}

	user := currentUser(c)

	// The final http status. Will be modified when errors occur
	finalStatus := http.StatusCreated
	r := SavingsGoalCreateResponse{}

	for _, editable := range editables {
		goal := editable.model(user.ID)
		err := models.DB.Create(&goal).Error
		// Append the error
		if err != nil {
			finalStatus = r.appendError(err, finalStatus)
			continue
		}

		data := newSavingsGoal(c, goal)
		r.Data = append(r.Data, SavingsGoalResponse{Data: &data})
	}

	c.JSON(finalStatus, r)
}

// @Summary		List goals
// @Description	Returns a list of savings goals
// @Tags			SavingsGoals
// @Produce		json
// @Success		200	{object}	SavingsGoalListResponse
// @Failure		400	{object}	SavingsGoalListResponse
// @Failure		500	{object}	SavingsGoalListResponse
// @Router			/v1/goals [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the goal archived?"
// @Param			status		query	string	false	"Filter by status, one of active, completed, archived"
// @Param			offset		query	uint	false	"The offset of the first goal returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of goals to return. Defaults to 50."
func GetSavingsGoals(c *gin.Context) {
	var filter SavingsGoalQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SavingsGoalListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Order("name ASC").
		Where("user_id = ?", currentUser(c).ID).
		Where(&model, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Note != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Note))
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("note = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 goals and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var goals []models.SavingsGoal
	err := q.Find(&goals).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SavingsGoal, 0)
	for _, goal := range goals {
		resource := newSavingsGoal(c, goal)

		// The status is derived, not stored, so it is filtered here
		if filter.Status != "" && string(resource.Status) != filter.Status {
			continue
		}

		data = append(data, resource)
	}

	c.JSON(http.StatusOK, SavingsGoalListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get goal
// @Description	Returns a specific savings goal
// @Tags			SavingsGoals
// @Produce		json
// @Success		200	{object}	SavingsGoalResponse
// @Failure		400	{object}	SavingsGoalResponse
// @Failure		404	{object}	SavingsGoalResponse
// @Failure		500	{object}	SavingsGoalResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [get]
func GetSavingsGoal(c *gin.Context) {
	goal, err := goalFromParam(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	data := newSavingsGoal(c, goal)
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &data})
}

// @Summary		Update goal
// @Description	Updates an existing savings goal. Only values to be updated need to be specified.
// @Tags			SavingsGoals
// @Accept			json
// @Produce		json
// @Success		200		{object}	SavingsGoalResponse
// @Failure		400		{object}	SavingsGoalResponse
// @Failure		404		{object}	SavingsGoalResponse
// @Failure		500		{object}	SavingsGoalResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			goal	body		SavingsGoalEditable	true	"Goal"
// @Router			/v1/goals/{id} [patch]
func UpdateSavingsGoal(c *gin.Context) {
	goal, err := goalFromParam(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, SavingsGoalEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var update SavingsGoalEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&goal).Select("", updateFields...).Updates(update.model(currentUser(c).ID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	// Reload so that the response contains the values as the hooks stored
	// them, not the merged request data
	err = models.DB.First(&goal, "id = ?", goal.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	data := newSavingsGoal(c, goal)
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &data})
}

// @Summary		Delete goal
// @Description	Deletes a savings goal. Budgets linked to it keep their reference and simply stop transferring.
// @Tags			SavingsGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [delete]
func DeleteSavingsGoal(c *gin.Context) {
	goal, err := goalFromParam(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Add funds
// @Description	Records a manual contribution to the goal and raises its balance
// @Tags			SavingsGoals
// @Accept			json
// @Produce		json
// @Success		200				{object}	SavingsGoalResponse
// @Failure		400				{object}	SavingsGoalResponse
// @Failure		404				{object}	SavingsGoalResponse
// @Failure		500				{object}	SavingsGoalResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			contribution	body		ContributionEditable	true	"Contribution"
// @Router			/v1/goals/{id}/funds [post]
func AddSavingsGoalFunds(c *gin.Context) {
	goal, err := goalFromParam(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	var contribution ContributionEditable
	err = httputil.BindData(c, &contribution)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return goal.AddFunds(tx, contribution.Amount, models.ProgressSourceManual, time.Now())
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &e,
		})
		return
	}

	data := newSavingsGoal(c, goal)
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &data})
}

// @Summary		Get goal progress
// @Description	Returns the contribution history of the goal, newest first
// @Tags			SavingsGoals
// @Produce		json
// @Success		200	{object}	GoalProgressListResponse
// @Failure		400	{object}	GoalProgressListResponse
// @Failure		404	{object}	GoalProgressListResponse
// @Failure		500	{object}	GoalProgressListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id}/progress [get]
func GetSavingsGoalProgress(c *gin.Context) {
	goal, err := goalFromParam(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalProgressListResponse{
			Error: &e,
		})
		return
	}

	var history []models.GoalProgress
	err = models.DB.
		Where("goal_id = ?", goal.ID).
		Order("datetime(recorded_at) DESC, datetime(created_at) DESC").
		Find(&history).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalProgressListResponse{
			Error: &e,
		})
		return
	}

	data := make([]GoalProgress, 0)
	for _, entry := range history {
		data = append(data, newGoalProgress(entry))
	}

	c.JSON(http.StatusOK, GoalProgressListResponse{Data: data})
}
