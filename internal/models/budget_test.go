package models_test

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pocketplan/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBudgetTrimWhitespace() {
	name := " Groceries  \t"
	note := "  Everything from the supermarket "

	budget := suite.createTestBudget(models.Budget{
		Name: name,
		Note: note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), budget.Name)
	assert.Equal(suite.T(), strings.TrimSpace(note), budget.Note)

	// Updates are trimmed the same way
	err := models.DB.Model(&budget).
		Select("", "Name").
		Updates(models.Budget{Name: " Rent "}).Error
	assert.Nil(suite.T(), err)

	require.Nil(suite.T(), models.DB.First(&budget, "id = ?", budget.ID).Error)
	assert.Equal(suite.T(), "Rent", budget.Name)
}

func (suite *TestSuiteStandard) TestBudgetNonexistentUser() {
	budget := models.Budget{
		UserID: uuid.New(),
		Name:   "Orphaned",
	}

	err := models.DB.Create(&budget).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestBudgetDuplicateNames() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestBudget(models.Budget{UserID: user.ID, Name: "Groceries"})

	duplicate := models.Budget{
		UserID: user.ID,
		Name:   "Groceries",
	}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetNameNotUnique)

	// The same name is fine for another user
	other := suite.createTestUser(models.User{Name: "Other User"})
	_ = suite.createTestBudget(models.Budget{UserID: other.ID, Name: "Groceries"})
}

func (suite *TestSuiteStandard) TestBudgetNegativeAllocation() {
	user := suite.createTestUser(models.User{})

	budget := models.Budget{
		UserID:            user.ID,
		Name:              "Negative",
		ExpenseAllocation: decimal.NewFromFloat(-1),
	}

	err := models.DB.Create(&budget).Error
	assert.ErrorIs(suite.T(), err, models.ErrAllocationNegative)
}

// TestBudgetAllocationExceedsIncome verifies that the sum of all allocations
// over all budgets of a user can never exceed the monthly income.
func (suite *TestSuiteStandard) TestBudgetAllocationExceedsIncome() {
	user := suite.createTestUser(models.User{})
	suite.incomeFor(user.ID, 2000)

	_ = suite.createTestBudget(models.Budget{
		UserID:            user.ID,
		Name:              "Rent",
		ExpenseAllocation: decimal.NewFromFloat(1200),
		SavingsAllocation: decimal.NewFromFloat(300),
	})

	// 1200 + 300 + 600 = 2100, which is 100 more than the income
	budget := models.Budget{
		UserID:            user.ID,
		Name:              "Fun",
		ExpenseAllocation: decimal.NewFromFloat(600),
	}
	err := models.DB.Create(&budget).Error
	assert.ErrorIs(suite.T(), err, models.ErrAllocationExceedsIncome)
	assert.Contains(suite.T(), err.Error(), "by 100")

	// 500 fits exactly
	budget = models.Budget{
		UserID:            user.ID,
		Name:              "Fun",
		ExpenseAllocation: decimal.NewFromFloat(500),
	}
	err = models.DB.Create(&budget).Error
	assert.Nil(suite.T(), err)
}

// TestBudgetUpdateExcludesSelf verifies that a budget's own stored
// allocation does not count against it when it is edited.
func (suite *TestSuiteStandard) TestBudgetUpdateExcludesSelf() {
	user := suite.createTestUser(models.User{})
	suite.incomeFor(user.ID, 1000)

	budget := suite.createTestBudget(models.Budget{
		UserID:            user.ID,
		Name:              "Groceries",
		ExpenseAllocation: decimal.NewFromFloat(400),
		SavingsAllocation: decimal.NewFromFloat(100),
	})

	// Raising the expense part to 800 gives a total of 900, which fits.
	// If the stored 500 were still counted, this would fail.
	err := models.DB.Model(&budget).
		Select("", "ExpenseAllocation").
		Updates(models.Budget{ExpenseAllocation: decimal.NewFromFloat(800)}).Error
	assert.Nil(suite.T(), err)

	// 950 + 100 = 1050 exceeds the income
	err = models.DB.Model(&budget).
		Select("", "ExpenseAllocation").
		Updates(models.Budget{ExpenseAllocation: decimal.NewFromFloat(950)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAllocationExceedsIncome)
}

// TestBudgetZeroAllocation verifies that budgets without any allocation can
// always be created, even when there is no income at all.
func (suite *TestSuiteStandard) TestBudgetZeroAllocation() {
	user := suite.createTestUser(models.User{})

	_ = suite.createTestBudget(models.Budget{
		UserID: user.ID,
		Name:   "Placeholder",
	})
}

func (suite *TestSuiteStandard) TestBudgetLinkedGoalMustExist() {
	user := suite.createTestUser(models.User{})

	nonexistent := uuid.New()
	budget := models.Budget{
		UserID:       user.ID,
		Name:         "Savings Plan",
		LinkedGoalID: &nonexistent,
	}
	err := models.DB.Create(&budget).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	goal := suite.createTestGoal(models.SavingsGoal{UserID: user.ID})
	budget = suite.createTestBudget(models.Budget{
		UserID:       user.ID,
		Name:         "Savings Plan",
		LinkedGoalID: &goal.ID,
	})

	assert.NotNil(suite.T(), budget.LinkedGoal(models.DB))
}

// TestBudgetForeignGoal verifies that budgets can only link goals of their
// own user.
func (suite *TestSuiteStandard) TestBudgetForeignGoal() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{Name: "Other User"})
	foreign := suite.createTestGoal(models.SavingsGoal{UserID: other.ID})

	budget := models.Budget{
		UserID:       user.ID,
		Name:         "Savings Plan",
		LinkedGoalID: &foreign.ID,
	}
	err := models.DB.Create(&budget).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// Linking after the fact must fail the same way
	budget = suite.createTestBudget(models.Budget{UserID: user.ID, Name: "Savings Plan"})
	err = models.DB.Model(&budget).
		Select("", "LinkedGoalID").
		Updates(models.Budget{LinkedGoalID: &foreign.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

// TestBudgetRecreateAfterDelete verifies that a deleted budget does not
// block its name for new budgets.
func (suite *TestSuiteStandard) TestBudgetRecreateAfterDelete() {
	user := suite.createTestUser(models.User{})

	budget := suite.createTestBudget(models.Budget{UserID: user.ID, Name: "Rent"})
	require.Nil(suite.T(), models.DB.Delete(&budget).Error)

	_ = suite.createTestBudget(models.Budget{UserID: user.ID, Name: "Rent"})
}

// TestBudgetLinkedGoalDangling verifies that deleting a goal leaves the
// budget intact and its reference dangling.
func (suite *TestSuiteStandard) TestBudgetLinkedGoalDangling() {
	user := suite.createTestUser(models.User{})
	goal := suite.createTestGoal(models.SavingsGoal{UserID: user.ID})

	budget := suite.createTestBudget(models.Budget{
		UserID:       user.ID,
		Name:         "Savings Plan",
		LinkedGoalID: &goal.ID,
	})

	err := models.DB.Delete(&goal).Error
	assert.Nil(suite.T(), err)

	err = models.DB.First(&budget, "id = ?", budget.ID).Error
	assert.Nil(suite.T(), err)
	assert.NotNil(suite.T(), budget.LinkedGoalID)
	assert.Nil(suite.T(), budget.LinkedGoal(models.DB))
}

func (suite *TestSuiteStandard) TestCheckAllocation() {
	user := suite.createTestUser(models.User{})
	suite.incomeFor(user.ID, 2000)

	_ = suite.createTestBudget(models.Budget{
		UserID:            user.ID,
		Name:              "Rent",
		ExpenseAllocation: decimal.NewFromFloat(1200),
		SavingsAllocation: decimal.NewFromFloat(300),
	})

	check, err := models.CheckAllocation(models.DB, user.ID, decimal.NewFromFloat(600), decimal.Zero, nil)
	assert.Nil(suite.T(), err)
	assert.False(suite.T(), check.Valid)
	assert.True(suite.T(), check.ExceededBy.Equal(decimal.NewFromFloat(100)), "exceededBy is %s", check.ExceededBy)
	assert.True(suite.T(), check.Income.Equal(decimal.NewFromFloat(2000)), "income is %s", check.Income)
	assert.True(suite.T(), check.Allocated.Equal(decimal.NewFromFloat(1500)), "allocated is %s", check.Allocated)

	check, err = models.CheckAllocation(models.DB, user.ID, decimal.NewFromFloat(500), decimal.Zero, nil)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), check.Valid)
	assert.True(suite.T(), check.Remaining.IsZero(), "remaining is %s", check.Remaining)
}
