// Package reconcile implements the monthly reset: savings allocations are
// transferred into their linked goals and the spent counters start over.
package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/pocketplan/backend/internal/models"
	"github.com/pocketplan/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Result reports what a reconciliation run did, for user-facing
// confirmation messaging.
type Result struct {
	TransfersCount   int             `json:"transfersCount" example:"3"`      // Number of budgets whose savings allocation was transferred
	TotalTransferred decimal.Decimal `json:"totalTransferred" example:"450"`  // Sum of all transferred amounts
}

// Process runs the monthly reset for one user.
//
// Budgets whose LastReset already falls into the current month of the
// user's timezone are skipped, so running Process twice within the same
// month is a no-op reported as zero transfers.
//
// All updates of one run happen in a single database transaction: either
// every due budget is reset or none is.
func Process(db *gorm.DB, user models.User, now time.Time) (Result, error) {
	loc := user.Location()
	today := now.In(loc)
	month := types.MonthOf(today)

	result := Result{TotalTransferred: decimal.Zero}

	err := db.Transaction(func(tx *gorm.DB) error {
		// The due check runs on a read inside the transaction so that a
		// scheduler tick racing a manually triggered run cannot both see a
		// stale LastReset and transfer twice.
		var budgets []models.Budget
		err := tx.Where("user_id = ?", user.ID).Order("name ASC").Find(&budgets).Error
		if err != nil {
			return err
		}

		for i := range budgets {
			budget := &budgets[i]

			if budget.LastReset != nil && month.Contains(budget.LastReset.In(loc)) {
				continue
			}

			if budget.SavingsAllocation.IsPositive() && budget.LinkedGoalID != nil {
				var goal models.SavingsGoal
				err := tx.First(&goal, "id = ? AND user_id = ?", *budget.LinkedGoalID, user.ID).Error
				if err == nil {
					err = goal.AddFunds(tx, budget.SavingsAllocation, models.ProgressSourceReconciliation, today)
					if err != nil {
						return err
					}

					result.TransfersCount++
					result.TotalTransferred = result.TotalTransferred.Add(budget.SavingsAllocation)
				} else if !errors.Is(err, models.ErrResourceNotFound) {
					return err
				}
				// A dangling goal reference transfers nothing, the budget
				// is still reset.
			}

			err := tx.Model(budget).
				Select("ExpenseSpent", "LastReset").
				Updates(models.Budget{ExpenseSpent: decimal.Zero, LastReset: &today}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		failuresTotal.Inc()
		return Result{}, fmt.Errorf("error processing transfers: %w", err)
	}

	runsTotal.Inc()
	transfersTotal.Add(float64(result.TransfersCount))
	transferred, _ := result.TotalTransferred.Float64()
	transferredTotal.Add(transferred)

	log.Info().
		Str("user", user.ID.String()).
		Int("transfers", result.TransfersCount).
		Str("transferred", result.TotalTransferred.String()).
		Msg("monthly reset complete")

	return result, nil
}
