package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketplan/backend/internal/httputil"
	"github.com/pocketplan/backend/internal/models"
	"github.com/shopspring/decimal"
)

type BudgetEditable struct {
	Name string `json:"name" example:"Groceries"` // Name of the budget
	Note string `json:"note" example:"Everything from the supermarket" default:""` // A longer description

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	ExpenseAllocation decimal.Decimal `json:"expenseAllocation" example:"400" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount planned to be spent per month
	SavingsAllocation decimal.Decimal `json:"savingsAllocation" example:"50" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`  // The amount set aside per month

	LinkedGoalID *uuid.UUID `json:"linkedGoalId" example:"f9288848-517e-4b8c-9f14-b3d849aba151"` // ID of the savings goal the savings part is moved to
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model(userID uuid.UUID) models.Budget {
	return models.Budget{
		UserID:            userID,
		Name:              editable.Name,
		Note:              editable.Note,
		ExpenseAllocation: editable.ExpenseAllocation,
		SavingsAllocation: editable.SavingsAllocation,
		LinkedGoalID:      editable.LinkedGoalID,
	}
}

type BudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`              // The budget itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?budget=550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // Expense transactions for this budget
}

// Budget is the API representation of a Budget.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Spent     decimal.Decimal `json:"spent" example:"123.45"` // The amount spent from the expense allocation this month
	LastReset *time.Time      `json:"lastReset" example:"2024-07-01T00:00:00Z"` // When the monthly reset last processed this budget
	Links     BudgetLinks     `json:"links"`
}

// newBudget returns the API representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:              model.Name,
			Note:              model.Note,
			ExpenseAllocation: model.ExpenseAllocation,
			SavingsAllocation: model.SavingsAllocation,
			LinkedGoalID:      model.LinkedGoalID,
		},
		Spent:     model.ExpenseSpent,
		LastReset: model.LastReset,
		Links: BudgetLinks{
			Self:         fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?budget=%s", url, model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                          // List of created Budgets
}

func (t *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	if status(err) > currentStatus {
		currentStatus = status(err)
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                                          // The Budget data, if creation was successful
}

type BudgetQueryFilter struct {
	Name         string `form:"name" filterField:"false"`   // By name
	Note         string `form:"note" filterField:"false"`   // By note
	LinkedGoalID string `form:"goal"`                       // By ID of the linked savings goal
	Offset       uint   `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit        int    `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() (models.Budget, error) {
	linkedGoalID, err := httputil.UUIDFromString(f.LinkedGoalID)
	if err != nil {
		return models.Budget{}, err
	}

	// If the goal ID is not set, use an actual nil, not uuid.Nil
	var gID *uuid.UUID
	if linkedGoalID != uuid.Nil {
		gID = &linkedGoalID
	}

	return models.Budget{
		LinkedGoalID: gID,
	}, nil
}

// AllocationCheckEditable is the allocation pair submitted for validation.
type AllocationCheckEditable struct {
	ExpenseAllocation decimal.Decimal `json:"expenseAllocation" example:"400"` // The expense part of the proposed allocation
	SavingsAllocation decimal.Decimal `json:"savingsAllocation" example:"50"`  // The savings part of the proposed allocation
	BudgetID          *uuid.UUID      `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the budget being edited, if any. Its stored allocation is excluded from the check.
}

type AllocationCheckResponse struct {
	Data  *models.AllocationCheck `json:"data"`  // The result of the check
	Error *string                 `json:"error"` // The error, if any occurred
}
