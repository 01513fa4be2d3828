package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProgressSource string

const (
	ProgressSourceManual         ProgressSource = "manual"
	ProgressSourceAdvisor        ProgressSource = "advisor"
	ProgressSourceReconciliation ProgressSource = "reconciliation"
)

// GoalProgress is an append-only history entry for a goal contribution.
type GoalProgress struct {
	DefaultModel
	GoalID     uuid.UUID
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The contributed amount
	Balance    decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The goal balance after the contribution
	Source     ProgressSource
	RecordedAt time.Time
}

func (p *GoalProgress) BeforeSave(_ *gorm.DB) error {
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now().In(time.UTC)
	} else {
		p.RecordedAt = p.RecordedAt.In(time.UTC)
	}

	return nil
}

// Export returns all goal progress entries on this instance.
func (GoalProgress) Export() (json.RawMessage, error) {
	var progress []GoalProgress
	err := DB.Unscoped().Where(&GoalProgress{}).Find(&progress).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&progress)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
