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

func (suite *TestSuiteStandard) TestOptionsAdvisorCommands() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodOptions, "/v1/advisor/commands", "", userHeader(user))
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateAdvisorCommands() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)
	goal := suite.createTestGoal(user, v1.SavingsGoalEditable{Name: "Vacation"})

	r := test.Request(suite.T(), http.MethodPost, "/v1/advisor/commands", v1.AdvisorEditable{
		Text: `Let's plan your savings!

[CREATE_BUDGET: Savings Plan | $0 | $300 | Vacation | Monthly transfer]
[ADD_FUNDS_TO_GOAL: Vacation | $150]`,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AdvisorResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	require.NotNil(suite.T(), response.Data[0].Data)
	assert.Equal(suite.T(), "CREATE_BUDGET", response.Data[0].Data.Verb)
	require.NotNil(suite.T(), response.Data[1].Data)

	// Both commands took effect
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/goals/%s", goal.ID), "", userHeader(user))
	var goalResponse v1.SavingsGoalResponse
	test.DecodeResponse(suite.T(), &r, &goalResponse)
	assert.True(suite.T(), goalResponse.Data.CurrentAmount.Equal(decimal.NewFromFloat(150)))
}

// TestCreateAdvisorCommandsPartialFailure verifies that commands after a
// failed one are still applied and the response code is the highest a
// single command caused.
func (suite *TestSuiteStandard) TestCreateAdvisorCommandsPartialFailure() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)

	r := test.Request(suite.T(), http.MethodPost, "/v1/advisor/commands", v1.AdvisorEditable{
		Text: `[ADD_FUNDS_TO_GOAL: Retirement | $100]
[CREATE_BUDGET: Fun | $500 | $0 | none]`,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.AdvisorResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Error)
	assert.NotNil(suite.T(), response.Data[1].Data)

	// The budget from the second command exists
	r = test.Request(suite.T(), http.MethodGet, "/v1/budgets?name=Fun", "", userHeader(user))
	var budgets v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &budgets)
	assert.Len(suite.T(), budgets.Data, 1)
}

func (suite *TestSuiteStandard) TestCreateAdvisorCommandsEmpty() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodPost, "/v1/advisor/commands", v1.AdvisorEditable{}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateAdvisorCommandsUnknownVerb() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodPost, "/v1/advisor/commands", v1.AdvisorEditable{
		Text: "[SELL_STOCKS: everything]",
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestCreateAdvisorCommandsNoTokens verifies that advisor text without any
// tokens is a successful no-op.
func (suite *TestSuiteStandard) TestCreateAdvisorCommandsNoTokens() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodPost, "/v1/advisor/commands", v1.AdvisorEditable{
		Text: "Your budgets look great this month, no changes needed.",
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AdvisorResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)
}
