package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketplan/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget represents a named slice of a user's monthly income.
//
// Each budget carries a pair of allocations: the amount planned to be spent
// on expenses and the amount set aside for savings. The savings part is
// moved into the linked goal by the monthly reset.
type Budget struct {
	DefaultModel
	UserID            uuid.UUID       `gorm:"uniqueIndex:budget_user_name,where:deleted_at IS NULL"`
	Name              string          `gorm:"uniqueIndex:budget_user_name"`
	Note              string
	ExpenseAllocation decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	SavingsAllocation decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	ExpenseSpent      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	LinkedGoalID      *uuid.UUID      // weak reference, may dangle after the goal is deleted
	LastReset         *time.Time
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	return nil
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Budget)

	if toSave.ExpenseAllocation.IsNegative() || toSave.SavingsAllocation.IsNegative() || toSave.ExpenseSpent.IsNegative() {
		return ErrAllocationNegative
	}

	// The user must exist
	err := tx.First(&User{}, "id = ?", toSave.UserID).Error
	if err != nil {
		return err
	}

	// Linking requires a goal of the same user to exist. Only deleting a
	// goal later may leave the reference dangling.
	if toSave.LinkedGoalID != nil {
		err = tx.First(&SavingsGoal{}, "id = ? AND user_id = ?", *toSave.LinkedGoalID, toSave.UserID).Error
		if err != nil {
			return err
		}
	}

	check, err := CheckAllocation(tx, toSave.UserID, toSave.ExpenseAllocation, toSave.SavingsAllocation, nil)
	if err != nil {
		return err
	}

	if !check.Valid {
		return fmt.Errorf("%w by %s", ErrAllocationExceedsIncome, check.ExceededBy)
	}

	return nil
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Budget)

	// BeforeSave only sees the loaded record here, so the incoming values
	// are trimmed via the statement
	if tx.Statement.Changed("Name") {
		tx.Statement.SetColumn("Name", strings.TrimSpace(toSave.Name))
	}

	if tx.Statement.Changed("Note") {
		tx.Statement.SetColumn("Note", strings.TrimSpace(toSave.Note))
	}

	if tx.Statement.Changed("LinkedGoalID") && toSave.LinkedGoalID != nil {
		err := tx.First(&SavingsGoal{}, "id = ? AND user_id = ?", *toSave.LinkedGoalID, b.UserID).Error
		if err != nil {
			return err
		}
	}

	if !tx.Statement.Changed("ExpenseAllocation") && !tx.Statement.Changed("SavingsAllocation") {
		return nil
	}

	// Validation always operates on the resulting full allocation pair, so
	// the unchanged field is resolved from the stored record.
	expense := b.ExpenseAllocation
	savings := b.SavingsAllocation
	if tx.Statement.Changed("ExpenseAllocation") {
		expense = toSave.ExpenseAllocation
	}
	if tx.Statement.Changed("SavingsAllocation") {
		savings = toSave.SavingsAllocation
	}

	if expense.IsNegative() || savings.IsNegative() {
		return ErrAllocationNegative
	}

	check, err := CheckAllocation(tx, b.UserID, expense, savings, &b.ID)
	if err != nil {
		return err
	}

	if !check.Valid {
		return fmt.Errorf("%w by %s", ErrAllocationExceedsIncome, check.ExceededBy)
	}

	return nil
}

// LinkedGoal resolves the linked goal of the budget's owner. A dangling or
// unset reference resolves to nil, it is never an error.
func (b Budget) LinkedGoal(db *gorm.DB) *SavingsGoal {
	if b.LinkedGoalID == nil {
		return nil
	}

	var goal SavingsGoal
	err := db.First(&goal, "id = ? AND user_id = ?", *b.LinkedGoalID, b.UserID).Error
	if err != nil {
		return nil
	}

	return &goal
}

// AllocationCheck is the result of checking a proposed allocation pair
// against the user's monthly income.
type AllocationCheck struct {
	Valid      bool            // Whether the proposed pair fits into the income
	Income     decimal.Decimal // The monthly income the check ran against
	Allocated  decimal.Decimal // Total allocations of the competing budgets
	Remaining  decimal.Decimal // Income minus all allocations including the proposed pair
	ExceededBy decimal.Decimal // How much the proposed pair exceeds the income, 0 if it fits
}

// CheckAllocation verifies that a proposed (expense, savings) allocation
// pair fits into the user's income for the current month together with the
// allocations of all other budgets.
//
// exclude is set to the budget's own ID when an existing budget is edited
// so that its stored allocation does not count against itself.
//
// This is checked at write time only. Income shrinking afterwards can leave
// the stored budgets over-allocated, which is reported by Totals but never
// corrected retroactively.
func CheckAllocation(tx *gorm.DB, userID uuid.UUID, expense, savings decimal.Decimal, exclude *uuid.UUID) (AllocationCheck, error) {
	var user User
	err := tx.First(&user, "id = ?", userID).Error
	if err != nil {
		return AllocationCheck{}, err
	}

	loc := user.Location()
	month := types.MonthOf(time.Now().In(loc))

	income, err := MonthlyIncome(tx, userID, month, loc)
	if err != nil {
		return AllocationCheck{}, err
	}

	q := tx.Model(&Budget{}).Where("user_id = ?", userID)
	if exclude != nil {
		q = q.Where("id != ?", *exclude)
	}

	var allocated decimal.NullDecimal
	err = q.Select("SUM(expense_allocation + savings_allocation)").Row().Scan(&allocated)
	if err != nil {
		return AllocationCheck{}, fmt.Errorf("summing budget allocations failed: %w", err)
	}

	remaining := income.Sub(allocated.Decimal).Sub(expense).Sub(savings)

	check := AllocationCheck{
		Valid:     !remaining.IsNegative(),
		Income:    income,
		Allocated: allocated.Decimal,
		Remaining: remaining,
	}

	if remaining.IsNegative() {
		check.ExceededBy = remaining.Neg()
	}

	// A zero/zero pair is pointless but not harmful
	if expense.IsZero() && savings.IsZero() {
		check.Valid = true
	}

	return check, nil
}

// Export returns all budgets on this instance.
func (Budget) Export() (json.RawMessage, error) {
	var budgets []Budget
	err := DB.Unscoped().Where(&Budget{}).Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&budgets)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
