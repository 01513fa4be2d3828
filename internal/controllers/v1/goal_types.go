package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketplan/backend/internal/models"
	"github.com/shopspring/decimal"
)

type SavingsGoalEditable struct {
	Name string `json:"name" example:"New car"`                            // Name of the goal
	Note string `json:"note" example:"Replace the old one" default:""` // A longer description

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"5000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The target balance
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"750" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`          // The current balance

	Archived bool `json:"archived" example:"true" default:"false"` // If this goal is still relevant
}

// model returns the database resource for the API representation of the editable fields
func (editable SavingsGoalEditable) model(userID uuid.UUID) models.SavingsGoal {
	return models.SavingsGoal{
		UserID:        userID,
		Name:          editable.Name,
		Note:          editable.Note,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		Archived:      editable.Archived,
	}
}

type SavingsGoalLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/goals/f9288848-517e-4b8c-9f14-b3d849aba151"`              // The goal itself
	Progress string `json:"progress" example:"https://example.com/api/v1/goals/f9288848-517e-4b8c-9f14-b3d849aba151/progress"` // The contribution history of the goal
}

// SavingsGoal is the API representation of a SavingsGoal.
type SavingsGoal struct {
	models.DefaultModel
	SavingsGoalEditable
	Status models.GoalStatus `json:"status" example:"active"` // Derived from the balance and the archived flag
	Links  SavingsGoalLinks  `json:"links"`
}

// newSavingsGoal returns the API representation of the resource
func newSavingsGoal(c *gin.Context, model models.SavingsGoal) SavingsGoal {
	url := c.GetString(string(models.DBContextURL))

	return SavingsGoal{
		DefaultModel: model.DefaultModel,
		SavingsGoalEditable: SavingsGoalEditable{
			Name:          model.Name,
			Note:          model.Note,
			TargetAmount:  model.TargetAmount,
			CurrentAmount: model.CurrentAmount,
			Archived:      model.Archived,
		},
		Status: model.Status(),
		Links: SavingsGoalLinks{
			Self:     fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
			Progress: fmt.Sprintf("%s/v1/goals/%s/progress", url, model.ID),
		},
	}
}

type SavingsGoalListResponse struct {
	Data       []SavingsGoal `json:"data"`                                                          // List of goals
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type SavingsGoalCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SavingsGoalResponse `json:"data"`                                                          // List of created goals
}

func (t *SavingsGoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, SavingsGoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	if status(err) > currentStatus {
		currentStatus = status(err)
	}

	return currentStatus
}

type SavingsGoalResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this goal
	Data  *SavingsGoal `json:"data"`                                                          // The goal data, if creation was successful
}

type SavingsGoalQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the goal archived?
	Status   string `form:"status" filterField:"false"` // By derived status
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first goal returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of goals to return. Defaults to 50.
}

func (f SavingsGoalQueryFilter) model() models.SavingsGoal {
	return models.SavingsGoal{
		Archived: f.Archived,
	}
}

// ContributionEditable is a single manual contribution to a goal.
type ContributionEditable struct {
	Amount decimal.Decimal `json:"amount" example:"25" minimum:"0.00000001" multipleOf:"0.00000001"` // The amount to add to the goal balance
	Note   string          `json:"note" example:"Birthday money" default:""`                         // A note
}

// GoalProgress is the API representation of a single contribution to a goal.
type GoalProgress struct {
	models.DefaultModel
	Amount     decimal.Decimal       `json:"amount" example:"25"`                         // The contributed amount
	Balance    decimal.Decimal       `json:"balance" example:"775"`                       // The goal balance after the contribution
	Source     models.ProgressSource `json:"source" example:"manual"`                     // What recorded the contribution
	RecordedAt time.Time             `json:"recordedAt" example:"2024-07-07T18:43:00Z"`   // When the contribution was recorded
}

// newGoalProgress returns the API representation of the resource
func newGoalProgress(model models.GoalProgress) GoalProgress {
	return GoalProgress{
		DefaultModel: model.DefaultModel,
		Amount:       model.Amount,
		Balance:      model.Balance,
		Source:       model.Source,
		RecordedAt:   model.RecordedAt,
	}
}

type GoalProgressListResponse struct {
	Data  []GoalProgress `json:"data"`  // Contribution history, newest first
	Error *string        `json:"error"` // The error, if any occurred
}
