package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/pocketplan/backend/internal/controllers/v1"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/test"
	"github.com/pocketplan/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOptionsTransactions() {
	user := suite.createTestUser(v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodOptions, "/v1/transactions", "", userHeader(user))
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET, POST", r.Header().Get("allow"))

	transaction := suite.createTestTransaction(user, v1.TransactionEditable{})
	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", userHeader(user))
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET, PATCH, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateTransactions() {
	user := suite.createTestUser(v1.UserEditable{})
	budget := suite.createTestBudget(user, v1.BudgetEditable{})

	transaction := suite.createTestTransaction(user, v1.TransactionEditable{
		Amount:   decimal.NewFromFloat(14.03),
		Category: "Food",
		Note:     "Lunch",
		BudgetID: &budget.ID,
	})

	assert.Equal(suite.T(), models.TransactionTypeExpense, transaction.Type)
	assert.Equal(suite.T(), "Food", transaction.Category)
	assert.False(suite.T(), transaction.Date.IsZero())

	// The budget's spent counter tracks the expense
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(user))
	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Spent.Equal(decimal.NewFromFloat(14.03)), "spent is %s", response.Data.Spent)
}

func (suite *TestSuiteStandard) TestCreateTransactionsInvalid() {
	user := suite.createTestUser(v1.UserEditable{})

	tests := []struct {
		name     string
		editable v1.TransactionEditable
	}{
		{"invalid type", v1.TransactionEditable{Type: "transfer", Amount: decimal.NewFromFloat(10)}},
		{"zero amount", v1.TransactionEditable{Type: models.TransactionTypeExpense}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/v1/transactions", []v1.TransactionEditable{tt.editable}, userHeader(user))
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestCreateTransactionForeignBudget verifies that expenses cannot be
// booked against another user's budget.
func (suite *TestSuiteStandard) TestCreateTransactionForeignBudget() {
	user := suite.createTestUser(v1.UserEditable{})
	other := suite.createTestUser(v1.UserEditable{Name: "Other User"})
	foreign := suite.createTestBudget(other, v1.BudgetEditable{})

	r := test.Request(suite.T(), http.MethodPost, "/v1/transactions", []v1.TransactionEditable{{
		Type:     models.TransactionTypeExpense,
		Amount:   decimal.NewFromFloat(100),
		BudgetID: &foreign.ID,
	}}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The other user's spent counter stays untouched
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", foreign.ID), "", userHeader(other))
	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Spent.IsZero(), "spent is %s", response.Data.Spent)
}

func (suite *TestSuiteStandard) TestGetTransactions() {
	user := suite.createTestUser(v1.UserEditable{})
	budget := suite.createTestBudget(user, v1.BudgetEditable{})

	_ = suite.createTestTransaction(user, v1.TransactionEditable{
		Amount:   decimal.NewFromFloat(25),
		Category: "Food",
		Note:     "Lunch at the corner place",
		BudgetID: &budget.ID,
	})
	_ = suite.createTestTransaction(user, v1.TransactionEditable{
		Amount:   decimal.NewFromFloat(150),
		Category: "Transport",
	})
	_ = suite.createTestIncome(user, 2000)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"all", "", 3},
		{"by type", "type=expense", 2},
		{"by category", "category=Food", 1},
		{"by note", "note=corner", 1},
		{"by budget", "budget=" + budget.ID.String(), 1},
		{"amount", "amount=150", 1},
		{"amount range", "amountMoreOrEqual=100&amountLessOrEqual=200", 1},
		{"limit", "limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "/v1/transactions?"+tt.query, "", userHeader(user))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

// TestGetTransactionsMonth verifies the month filter evaluates the month
// boundaries in the user's timezone.
func (suite *TestSuiteStandard) TestGetTransactionsMonth() {
	user := suite.createTestUser(v1.UserEditable{Timezone: "Europe/Berlin"})

	loc, err := time.LoadLocation("Europe/Berlin")
	require.Nil(suite.T(), err)

	month := types.MonthOf(time.Now().In(loc))
	start, _ := month.BoundsIn(loc)

	_ = suite.createTestTransaction(user, v1.TransactionEditable{
		Amount: decimal.NewFromFloat(10),
		Date:   time.Now(),
	})

	// One hour before the month began in Berlin
	_ = suite.createTestTransaction(user, v1.TransactionEditable{
		Amount: decimal.NewFromFloat(99),
		Date:   start.Add(-time.Hour),
	})

	r := test.Request(suite.T(), http.MethodGet, "/v1/transactions?month="+month.String(), "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.True(suite.T(), response.Data[0].Amount.Equal(decimal.NewFromFloat(10)))

	r = test.Request(suite.T(), http.MethodGet, "/v1/transactions?month=never", "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetTransactionsUserScope() {
	user := suite.createTestUser(v1.UserEditable{})
	other := suite.createTestUser(v1.UserEditable{Name: "Other User"})

	transaction := suite.createTestTransaction(user, v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodGet, "/v1/transactions", "", userHeader(other))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", userHeader(other))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestUpdateTransactionMovesBudget verifies that moving an expense to
// another budget recomputes both spent counters.
func (suite *TestSuiteStandard) TestUpdateTransactionMovesBudget() {
	user := suite.createTestUser(v1.UserEditable{})
	first := suite.createTestBudget(user, v1.BudgetEditable{Name: "First"})
	second := suite.createTestBudget(user, v1.BudgetEditable{Name: "Second"})

	transaction := suite.createTestTransaction(user, v1.TransactionEditable{
		Amount:   decimal.NewFromFloat(30),
		BudgetID: &first.ID,
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", transaction.ID), map[string]any{
		"budgetId": second.ID,
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	for _, tt := range []struct {
		budget v1.Budget
		spent  decimal.Decimal
	}{
		{first, decimal.Zero},
		{second, decimal.NewFromFloat(30)},
	} {
		r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", tt.budget.ID), "", userHeader(user))
		var response v1.BudgetResponse
		test.DecodeResponse(suite.T(), &r, &response)
		assert.True(suite.T(), response.Data.Spent.Equal(tt.spent), "%s spent is %s", tt.budget.Name, response.Data.Spent)
	}
}

func (suite *TestSuiteStandard) TestUpdateTransactionKeepsAmount() {
	user := suite.createTestUser(v1.UserEditable{})

	transaction := suite.createTestTransaction(user, v1.TransactionEditable{
		Amount: decimal.NewFromFloat(42),
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", transaction.ID), map[string]any{
		"note": "Updated note",
	}, userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Updated note", response.Data.Note)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(42)))
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	user := suite.createTestUser(v1.UserEditable{})
	budget := suite.createTestBudget(user, v1.BudgetEditable{})

	transaction := suite.createTestTransaction(user, v1.TransactionEditable{
		Amount:   decimal.NewFromFloat(10),
		BudgetID: &budget.ID,
	})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The spent counter reflects the deletion
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", userHeader(user))
	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Spent.IsZero())

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", userHeader(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
