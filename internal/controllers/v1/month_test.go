package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/pocketplan/backend/internal/controllers/v1"
	"github.com/pocketplan/backend/internal/test"
	"github.com/pocketplan/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOptionsMonth() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodOptions, "/v1/months", "", userHeader(user))
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetMonth() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)

	budget := suite.createTestBudget(user, v1.BudgetEditable{
		Name:              "Groceries",
		ExpenseAllocation: decimal.NewFromFloat(400),
		SavingsAllocation: decimal.NewFromFloat(50),
	})
	_ = suite.createTestTransaction(user, v1.TransactionEditable{
		Amount:   decimal.NewFromFloat(123.45),
		BudgetID: &budget.ID,
	})

	// Defaults to the current month
	r := test.Request(suite.T(), http.MethodGet, "/v1/months", "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.True(suite.T(), response.Data.Income.Equal(decimal.NewFromFloat(2000)))
	assert.True(suite.T(), response.Data.TotalAllocation.Equal(decimal.NewFromFloat(450)))
	assert.True(suite.T(), response.Data.RemainingToAllocate.Equal(decimal.NewFromFloat(1550)))
	assert.False(suite.T(), response.Data.OverAllocated)

	require.Len(suite.T(), response.Data.Budgets, 1)
	assert.True(suite.T(), response.Data.Budgets[0].Spent.Equal(decimal.NewFromFloat(123.45)))
	assert.True(suite.T(), response.Data.Budgets[0].Remaining.Equal(decimal.NewFromFloat(276.55)))
}

func (suite *TestSuiteStandard) TestGetMonthExplicit() {
	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)

	// An empty past month sums to zero
	past := types.MonthOf(time.Now()).AddDate(-1, 0)
	r := test.Request(suite.T(), http.MethodGet, "/v1/months?month="+past.String(), "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Income.IsZero())
}

func (suite *TestSuiteStandard) TestGetMonthInvalid() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodGet, "/v1/months?month=長月", "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
