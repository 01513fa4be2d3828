package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketplan/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense entry.
//
// Income transactions are the source of truth for the monthly income,
// expense transactions with a budget reference are the source of truth for
// the budget's spent amount.
type Transaction struct {
	DefaultModel
	UserID   uuid.UUID
	Type     TransactionType
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category string
	Note     string
	Date     time.Time
	BudgetID *uuid.UUID // weak reference, kept dangling after the budget is deleted
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Category = strings.TrimSpace(t.Category)
	t.Note = strings.TrimSpace(t.Note)

	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	// The user must exist
	err := tx.First(&User{}, "id = ?", t.UserID).Error
	if err != nil {
		return err
	}

	// A referenced budget must belong to the same user. Only deleting the
	// budget later may leave the reference dangling.
	if t.BudgetID != nil {
		return tx.First(&Budget{}, "id = ? AND user_id = ?", *t.BudgetID, t.UserID).Error
	}

	return nil
}

func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Transaction)

	// BeforeSave only sees the loaded record here, so the incoming values
	// are trimmed via the statement
	if tx.Statement.Changed("Category") {
		tx.Statement.SetColumn("Category", strings.TrimSpace(toSave.Category))
	}

	if tx.Statement.Changed("Note") {
		tx.Statement.SetColumn("Note", strings.TrimSpace(toSave.Note))
	}

	if tx.Statement.Changed("BudgetID") && toSave.BudgetID != nil {
		return tx.First(&Budget{}, "id = ? AND user_id = ?", *toSave.BudgetID, t.UserID).Error
	}

	return nil
}

// AfterCreate keeps the referenced budget's spent counter current.
func (t *Transaction) AfterCreate(tx *gorm.DB) error {
	return t.refreshBudget(tx)
}

// AfterDelete keeps the referenced budget's spent counter current.
func (t *Transaction) AfterDelete(tx *gorm.DB) error {
	return t.refreshBudget(tx)
}

func (t *Transaction) refreshBudget(tx *gorm.DB) error {
	if t.Type != TransactionTypeExpense || t.BudgetID == nil {
		return nil
	}

	return RefreshBudgetSpent(tx, *t.BudgetID)
}

// RefreshBudgetSpent recomputes a budget's spent counter from its expense
// transactions in the current month of the owner's timezone.
//
// A dangling budget reference is a no-op: transactions keep their BudgetID
// after the budget is deleted.
func RefreshBudgetSpent(tx *gorm.DB, budgetID uuid.UUID) error {
	var budget Budget
	err := tx.First(&budget, "id = ?", budgetID).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil
		}
		return err
	}

	var user User
	err = tx.First(&user, "id = ?", budget.UserID).Error
	if err != nil {
		return err
	}

	loc := user.Location()
	month := types.MonthOf(time.Now().In(loc))

	spent, err := SpentInMonth(tx, budgetID, budget.UserID, month, loc)
	if err != nil {
		return err
	}

	return tx.Model(&budget).UpdateColumn("expense_spent", spent).Error
}

// MonthlyIncome returns the sum of all income transactions of the user
// dated within the month. The month bounds are computed in the given
// location. An empty transaction set sums to zero.
func MonthlyIncome(db *gorm.DB, userID uuid.UUID, month types.Month, loc *time.Location) (decimal.Decimal, error) {
	start, end := month.BoundsIn(loc)

	var sum decimal.NullDecimal
	err := db.Model(&Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, TransactionTypeIncome, start.In(time.UTC), end.In(time.UTC)).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing income transactions failed: %w", err)
	}

	return sum.Decimal, nil
}

// SpentInMonth returns the sum of the user's expense transactions
// referencing the budget and dated within the month.
func SpentInMonth(db *gorm.DB, budgetID, userID uuid.UUID, month types.Month, loc *time.Location) (decimal.Decimal, error) {
	start, end := month.BoundsIn(loc)

	var sum decimal.NullDecimal
	err := db.Model(&Transaction{}).
		Where("budget_id = ? AND user_id = ? AND type = ? AND date >= ? AND date < ?", budgetID, userID, TransactionTypeExpense, start.In(time.UTC), end.In(time.UTC)).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expense transactions failed: %w", err)
	}

	return sum.Decimal, nil
}

// Export returns all transactions on this instance.
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
