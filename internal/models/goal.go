package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusArchived  GoalStatus = "archived"
)

// SavingsGoal represents a savings target money is collected towards.
//
// Goals are never owned by a budget. Budgets hold a weak back-reference to
// the goal they transfer into, and many budgets may target the same goal.
type SavingsGoal struct {
	DefaultModel
	UserID        uuid.UUID       `gorm:"uniqueIndex:goal_user_name,where:deleted_at IS NULL"`
	Name          string          `gorm:"uniqueIndex:goal_user_name"`
	Note          string
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Archived      bool
}

func (g *SavingsGoal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

func (g *SavingsGoal) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*SavingsGoal)

	if !toSave.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	if toSave.CurrentAmount.IsNegative() {
		return ErrGoalBalanceNegative
	}

	// The user must exist
	return tx.First(&User{}, "id = ?", toSave.UserID).Error
}

func (g *SavingsGoal) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(SavingsGoal)

	// BeforeSave only sees the loaded record here, so the incoming values
	// are trimmed via the statement
	if tx.Statement.Changed("Name") {
		tx.Statement.SetColumn("Name", strings.TrimSpace(toSave.Name))
	}

	if tx.Statement.Changed("Note") {
		tx.Statement.SetColumn("Note", strings.TrimSpace(toSave.Note))
	}

	if tx.Statement.Changed("TargetAmount") && !toSave.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	if tx.Statement.Changed("CurrentAmount") && toSave.CurrentAmount.IsNegative() {
		return ErrGoalBalanceNegative
	}

	return nil
}

// Status derives the goal's lifecycle state.
func (g SavingsGoal) Status() GoalStatus {
	if g.Archived {
		return GoalStatusArchived
	}

	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		return GoalStatusCompleted
	}

	return GoalStatusActive
}

// AddFunds books a contribution onto the goal and appends a progress
// history entry. Contributions from direct user action, the advisor and
// the monthly reset all go through here.
func (g *SavingsGoal) AddFunds(tx *gorm.DB, amount decimal.Decimal, source ProgressSource, at time.Time) error {
	if !amount.IsPositive() {
		return ErrContributionNotPositive
	}

	g.CurrentAmount = g.CurrentAmount.Add(amount)
	err := tx.Model(g).Select("CurrentAmount").Updates(SavingsGoal{CurrentAmount: g.CurrentAmount}).Error
	if err != nil {
		return err
	}

	progress := GoalProgress{
		GoalID:     g.ID,
		Amount:     amount,
		Balance:    g.CurrentAmount,
		Source:     source,
		RecordedAt: at.In(time.UTC),
	}

	return tx.Create(&progress).Error
}

// Export returns all savings goals on this instance.
func (SavingsGoal) Export() (json.RawMessage, error) {
	var goals []SavingsGoal
	err := DB.Unscoped().Where(&SavingsGoal{}).Find(&goals).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&goals)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
