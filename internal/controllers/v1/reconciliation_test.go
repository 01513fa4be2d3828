package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/pocketplan/backend/internal/controllers/v1"
	"github.com/pocketplan/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOptionsReconciliation() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodOptions, "/v1/reconciliation", "", userHeader(user))
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateReconciliation() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)

	goal := suite.createTestGoal(user, v1.SavingsGoalEditable{Name: "Vacation"})
	budget := suite.createTestBudget(user, v1.BudgetEditable{
		Name:              "Savings Plan",
		SavingsAllocation: decimal.NewFromFloat(300),
		LinkedGoalID:      &goal.ID,
	})

	r := test.Request(suite.T(), http.MethodPost, "/v1/reconciliation", "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReconciliationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 1, response.Data.TransfersCount)
	assert.True(suite.T(), response.Data.TotalTransferred.Equal(decimal.NewFromFloat(300)))

	// The goal balance and reset marker reflect the run
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/goals/%s", goal.ID), "", userHeader(user))
	var goalResponse v1.SavingsGoalResponse
	test.DecodeResponse(suite.T(), &r, &goalResponse)
	assert.True(suite.T(), goalResponse.Data.CurrentAmount.Equal(decimal.NewFromFloat(300)))

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(user))
	var budgetResponse v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &budgetResponse)
	assert.NotNil(suite.T(), budgetResponse.Data.LastReset)

	// A second run within the same month is a no-op
	r = test.Request(suite.T(), http.MethodPost, "/v1/reconciliation", "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 0, response.Data.TransfersCount)
}
