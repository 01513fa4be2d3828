package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/pocketplan/backend/internal/controllers/v1"
	"github.com/pocketplan/backend/internal/router"
	"github.com/pocketplan/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOptionsBudgets() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodOptions, "/v1/budgets", "", userHeader(user))
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, "/v1/budgets/validate", "", userHeader(user))
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "POST", r.Header().Get("allow"))

	budget := suite.createTestBudget(user, v1.BudgetEditable{})
	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(user))
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET, PATCH, DELETE", r.Header().Get("allow"))
}

// TestBudgetsUserHeader verifies that budget routes are only reachable
// with a valid user header.
func (suite *TestSuiteStandard) TestBudgetsUserHeader() {
	tests := []struct {
		name    string
		headers map[string]string
		status  int
	}{
		{"missing header", nil, http.StatusBadRequest},
		{"invalid UUID", map[string]string{router.UserHeader: "not-a-uuid"}, http.StatusBadRequest},
		{"unknown user", map[string]string{router.UserHeader: "076df947-5b86-4572-b702-0dcfd74ee044"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "/v1/budgets", "", tt.headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateBudgets() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)
	goal := suite.createTestGoal(user, v1.SavingsGoalEditable{Name: "Vacation"})

	budget := suite.createTestBudget(user, v1.BudgetEditable{
		Name:              "Groceries",
		Note:              "Everything from the supermarket",
		ExpenseAllocation: decimal.NewFromFloat(400),
		SavingsAllocation: decimal.NewFromFloat(50),
		LinkedGoalID:      &goal.ID,
	})

	assert.Equal(suite.T(), "Groceries", budget.Name)
	assert.True(suite.T(), budget.Spent.IsZero())
	require.NotNil(suite.T(), budget.LinkedGoalID)
	assert.Equal(suite.T(), goal.ID, *budget.LinkedGoalID)
	assert.Contains(suite.T(), budget.Links.Transactions, fmt.Sprintf("budget=%s", budget.ID))
}

// TestCreateBudgetsPartialFailure verifies that the response code is the
// highest code any single budget creation caused.
func (suite *TestSuiteStandard) TestCreateBudgetsPartialFailure() {
	user := suite.createTestUser(v1.UserEditable{})
	_ = suite.createTestBudget(user, v1.BudgetEditable{Name: "Groceries"})

	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets", []v1.BudgetEditable{
		{Name: "Rent"},
		{Name: "Groceries"}, // duplicate
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Data)
	assert.NotNil(suite.T(), response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestCreateBudgetsExceedsIncome() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 1000)

	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets", []v1.BudgetEditable{
		{Name: "Rent", ExpenseAllocation: decimal.NewFromFloat(1100)},
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Contains(suite.T(), *response.Data[0].Error, "by 100")
}

func (suite *TestSuiteStandard) TestGetBudgets() {
	user := suite.createTestUser(v1.UserEditable{})
	goal := suite.createTestGoal(user, v1.SavingsGoalEditable{Name: "Vacation"})

	_ = suite.createTestBudget(user, v1.BudgetEditable{Name: "Rent"})
	_ = suite.createTestBudget(user, v1.BudgetEditable{Name: "Groceries", Note: "supermarket"})
	_ = suite.createTestBudget(user, v1.BudgetEditable{Name: "Savings Plan", LinkedGoalID: &goal.ID})

	// Budgets of other users are never returned
	other := suite.createTestUser(v1.UserEditable{Name: "Other User"})
	_ = suite.createTestBudget(other, v1.BudgetEditable{Name: "Not Yours"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"all", "", 3},
		{"by name", "name=groc", 1},
		{"by note", "note=super", 1},
		{"by goal", "goal=" + goal.ID.String(), 1},
		{"limit", "limit=2", 2},
		{"offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "/v1/budgets?"+tt.query, "", userHeader(user))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestGetBudgetsPagination() {
	user := suite.createTestUser(v1.UserEditable{})
	for i := 0; i < 3; i++ {
		_ = suite.createTestBudget(user, v1.BudgetEditable{Name: fmt.Sprintf("Budget %d", i)})
	}

	r := test.Request(suite.T(), http.MethodGet, "/v1/budgets?limit=2", "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Pagination)
	assert.Equal(suite.T(), 2, response.Pagination.Count)
	assert.Equal(suite.T(), int64(3), response.Pagination.Total)
	assert.Equal(suite.T(), 2, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestGetBudget() {
	user := suite.createTestUser(v1.UserEditable{})
	budget := suite.createTestBudget(user, v1.BudgetEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// Another user never sees the budget
	other := suite.createTestUser(v1.UserEditable{Name: "Other User"})
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(other))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)
	budget := suite.createTestBudget(user, v1.BudgetEditable{
		Name:              "Groceries",
		ExpenseAllocation: decimal.NewFromFloat(400),
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"expenseAllocation": 500,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(user))
	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.ExpenseAllocation.Equal(decimal.NewFromFloat(500)))
	assert.Equal(suite.T(), "Groceries", response.Data.Name)
}

// TestUpdateBudgetNormalizedResponse verifies that the update response
// carries the values as they were stored, not the raw request data.
func (suite *TestSuiteStandard) TestUpdateBudgetNormalizedResponse() {
	user := suite.createTestUser(v1.UserEditable{})
	budget := suite.createTestBudget(user, v1.BudgetEditable{Name: "Groceries"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"note": "  every supermarket run \t",
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "every supermarket run", response.Data.Note)
}

// TestUpdateBudgetExceedsIncome verifies that raising an allocation past
// the income is rejected. The budget's own stored allocation does not
// count against it.
func (suite *TestSuiteStandard) TestUpdateBudgetExceedsIncome() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 1000)
	budget := suite.createTestBudget(user, v1.BudgetEditable{
		Name:              "Groceries",
		ExpenseAllocation: decimal.NewFromFloat(400),
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"expenseAllocation": 1000,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"expenseAllocation": 1001,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	user := suite.createTestUser(v1.UserEditable{})
	budget := suite.createTestBudget(user, v1.BudgetEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestValidateAllocation() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)
	_ = suite.createTestBudget(user, v1.BudgetEditable{
		Name:              "Rent",
		ExpenseAllocation: decimal.NewFromFloat(1200),
		SavingsAllocation: decimal.NewFromFloat(300),
	})

	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets/validate", map[string]any{
		"expenseAllocation": 600,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AllocationCheckResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	// Nothing is saved, the check only reports
	assert.False(suite.T(), response.Data.Valid)
	assert.True(suite.T(), response.Data.ExceededBy.Equal(decimal.NewFromFloat(100)), "exceededBy is %s", response.Data.ExceededBy)

	r = test.Request(suite.T(), http.MethodPost, "/v1/budgets/validate", map[string]any{
		"expenseAllocation": 500,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Valid)
}

func (suite *TestSuiteStandard) TestValidateAllocationExcludesBudget() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 1000)
	budget := suite.createTestBudget(user, v1.BudgetEditable{
		Name:              "Groceries",
		ExpenseAllocation: decimal.NewFromFloat(400),
	})

	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets/validate", map[string]any{
		"expenseAllocation": 900,
		"budgetId":          budget.ID,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AllocationCheckResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Valid)
}

func (suite *TestSuiteStandard) TestValidateAllocationNegative() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets/validate", map[string]any{
		"expenseAllocation": -1,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
