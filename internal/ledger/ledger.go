// Package ledger aggregates budgets and transactions into the monthly
// numbers the rest of the backend works with.
package ledger

import (
	"github.com/google/uuid"
	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Totals are the aggregated allocation numbers over a user's budgets.
type Totals struct {
	TotalExpenseAllocation decimal.Decimal `json:"totalExpenseAllocation" example:"1200"` // Sum of all expense allocations
	TotalSavingsAllocation decimal.Decimal `json:"totalSavingsAllocation" example:"300"`  // Sum of all savings allocations
	TotalAllocation        decimal.Decimal `json:"totalAllocation" example:"1500"`        // Sum of both allocation parts over all budgets
	TotalExpenseSpent      decimal.Decimal `json:"totalExpenseSpent" example:"734.23"`    // Sum of the spent counters
	Income                 decimal.Decimal `json:"income" example:"2000"`                 // The monthly income the totals are relative to
	RemainingToAllocate    decimal.Decimal `json:"remainingToAllocate" example:"500"`     // Income minus the total allocation
	OverAllocated          bool            `json:"overAllocated" example:"false"`         // Whether the allocations exceed the income
}

// Sum reduces a budget set against a monthly income. It has no side
// effects, an empty budget set yields zeros.
func Sum(budgets []models.Budget, income decimal.Decimal) Totals {
	t := Totals{Income: income}

	for _, b := range budgets {
		t.TotalExpenseAllocation = t.TotalExpenseAllocation.Add(b.ExpenseAllocation)
		t.TotalSavingsAllocation = t.TotalSavingsAllocation.Add(b.SavingsAllocation)
		t.TotalExpenseSpent = t.TotalExpenseSpent.Add(b.ExpenseSpent)
	}

	t.TotalAllocation = t.TotalExpenseAllocation.Add(t.TotalSavingsAllocation)
	t.RemainingToAllocate = income.Sub(t.TotalAllocation)
	t.OverAllocated = t.RemainingToAllocate.IsNegative()

	return t
}

// BudgetMonth contains the month specific numbers of a single budget.
type BudgetMonth struct {
	ID                uuid.UUID       `json:"id" example:"6b5efa7b-dcb1-4b04-a31d-e9b6e1e32bc5"` // ID of the budget
	Name              string          `json:"name" example:"Groceries"`                          // Name of the budget
	ExpenseAllocation decimal.Decimal `json:"expenseAllocation" example:"400"`                   // The expense part of the allocation
	SavingsAllocation decimal.Decimal `json:"savingsAllocation" example:"50"`                    // The savings part of the allocation
	Spent             decimal.Decimal `json:"spent" example:"123.45"`                            // Amount spent in the month
	Remaining         decimal.Decimal `json:"remaining" example:"276.55"`                        // Expense allocation minus the spent amount
}

// Overview is the full ledger aggregation for one month.
type Overview struct {
	Month   types.Month   `json:"month" example:"2024-07-01T00:00:00Z"` // The month the overview is for
	Totals                // The aggregated numbers over all budgets
	Budgets []BudgetMonth `json:"budgets"` // Per-budget breakdown
}

// ForMonth computes the overview for a user and month.
//
// The per-budget spent amounts are recomputed from the transactions so
// that past months stay correct after the spent counters were reset.
func ForMonth(db *gorm.DB, user models.User, month types.Month) (Overview, error) {
	loc := user.Location()

	var budgets []models.Budget
	err := db.Where("user_id = ?", user.ID).Order("name ASC").Find(&budgets).Error
	if err != nil {
		return Overview{}, err
	}

	income, err := models.MonthlyIncome(db, user.ID, month, loc)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Month:   month,
		Totals:  Sum(budgets, income),
		Budgets: make([]BudgetMonth, 0, len(budgets)),
	}

	spentTotal := decimal.Zero
	for _, b := range budgets {
		spent, err := models.SpentInMonth(db, b.ID, user.ID, month, loc)
		if err != nil {
			return Overview{}, err
		}

		spentTotal = spentTotal.Add(spent)
		overview.Budgets = append(overview.Budgets, BudgetMonth{
			ID:                b.ID,
			Name:              b.Name,
			ExpenseAllocation: b.ExpenseAllocation,
			SavingsAllocation: b.SavingsAllocation,
			Spent:             spent,
			Remaining:         b.ExpenseAllocation.Sub(spent),
		})
	}

	overview.TotalExpenseSpent = spentTotal

	return overview, nil
}
