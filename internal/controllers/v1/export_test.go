package v1_test

import (
	"encoding/json"
	"net/http"
	"time"

	v1 "github.com/pocketplan/backend/internal/controllers/v1"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExport verifies that the export works correctly
//
// Thorough checks are only executed for the non-data fields since
// the data fields are populated by the Export() methods of the models
func (suite *TestSuiteStandard) TestExport() {
	t := suite.T()

	user := suite.createTestUser(v1.UserEditable{})
	suite.createTestIncome(user, 2000)
	budget := suite.createTestBudget(user, v1.BudgetEditable{
		ExpenseAllocation: decimal.NewFromFloat(500),
	})

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(t, &recorder, &response)

	// Verify the version and clacks fields
	assert.Equal(t, "GNU Terry Pratchett", response.Clacks)
	assert.Equal(t, "0.0.0", response.Version)

	// Not sure if this is a good test, if it ever fails we'll re-evaluate
	now := time.Now()
	difference := response.CreationTime.Sub(now).Seconds()
	assert.Less(t, difference, float64(1))

	// Basic tests for the data fields. Full testing is done in the respective Export() methods
	// of the models
	assert.Len(t, response.Data, len(models.Registry), "Number of models in export does not match registry")

	// CreatedAt check for the user
	var users []models.User
	require.Nil(t, json.Unmarshal(response.Data["User"], &users))
	require.Len(t, users, 1, "Number of users in export must be 1")
	assert.Equal(t, user.ID, users[0].ID)

	// CreatedAt check for the budget
	var budgets []models.Budget
	require.Nil(t, json.Unmarshal(response.Data["Budget"], &budgets))
	require.Len(t, budgets, 1, "Number of budgets in export must be 1")
	assert.Equal(t, budget.ID, budgets[0].ID)
}

func (suite *TestSuiteStandard) TestOptionsExport() {
	r := test.Request(suite.T(), http.MethodOptions, "/v1/export", "")
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}
