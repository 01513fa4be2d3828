package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/pocketplan/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// Dispatcher executes commands against the models. All writes go through
// the same gorm hooks as direct user action, so allocation validation
// applies to the advisor as well.
type Dispatcher struct {
	DB *gorm.DB
}

// Outcome is the confirmation for one executed command.
type Outcome struct {
	Verb    string `json:"verb" example:"CREATE_BUDGET"`           // The executed command
	Message string `json:"message" example:"created budget \"Fun\""` // Confirmation text
}

// Apply executes a single command on behalf of the user.
func (d Dispatcher) Apply(user models.User, cmd Command) (Outcome, error) {
	switch c := cmd.(type) {
	case CreateBudget:
		return d.createBudget(user, c)
	case EditBudget:
		return d.editBudget(user, c)
	case DeleteBudget:
		return d.deleteBudget(user, c)
	case LinkGoal:
		return d.linkGoal(user, c)
	case AddFunds:
		return d.addFunds(user, c)
	}

	return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

func (d Dispatcher) createBudget(user models.User, c CreateBudget) (Outcome, error) {
	budget := models.Budget{
		UserID:            user.ID,
		Name:              c.Name,
		Note:              c.Note,
		ExpenseAllocation: c.ExpenseAllocation,
		SavingsAllocation: c.SavingsAllocation,
	}

	if c.LinkedGoal != "" {
		goal, err := d.findGoal(user, c.LinkedGoal)
		if err != nil {
			return Outcome{}, err
		}
		budget.LinkedGoalID = &goal.ID
	}

	err := d.DB.Create(&budget).Error
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Verb:    c.Verb(),
		Message: fmt.Sprintf("created budget %q", budget.Name),
	}, nil
}

func (d Dispatcher) editBudget(user models.User, c EditBudget) (Outcome, error) {
	var budget models.Budget
	err := d.DB.First(&budget, "id = ? AND user_id = ?", c.ID, user.ID).Error
	if err != nil {
		return Outcome{}, err
	}

	var fields []any
	var data models.Budget

	if c.Name != nil {
		fields = append(fields, "Name")
		data.Name = *c.Name
	}

	if c.Note != nil {
		fields = append(fields, "Note")
		data.Note = *c.Note
	}

	if c.ExpenseAllocation != nil {
		fields = append(fields, "ExpenseAllocation")
		data.ExpenseAllocation = *c.ExpenseAllocation
	}

	if c.SavingsAllocation != nil {
		fields = append(fields, "SavingsAllocation")
		data.SavingsAllocation = *c.SavingsAllocation
	}

	if c.LinkedGoal != nil {
		fields = append(fields, "LinkedGoalID")
		if *c.LinkedGoal != "" {
			goal, err := d.findGoal(user, *c.LinkedGoal)
			if err != nil {
				return Outcome{}, err
			}
			data.LinkedGoalID = &goal.ID
		}
	}

	if len(fields) == 0 {
		return Outcome{
			Verb:    c.Verb(),
			Message: fmt.Sprintf("budget %q is unchanged", budget.Name),
		}, nil
	}

	err = d.DB.Model(&budget).Select("", fields...).Updates(data).Error
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Verb:    c.Verb(),
		Message: fmt.Sprintf("updated budget %q", budget.Name),
	}, nil
}

func (d Dispatcher) deleteBudget(user models.User, c DeleteBudget) (Outcome, error) {
	var budget models.Budget
	err := d.DB.First(&budget, "id = ? AND user_id = ?", c.ID, user.ID).Error
	if err != nil {
		return Outcome{}, err
	}

	err = d.DB.Delete(&budget).Error
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Verb:    c.Verb(),
		Message: fmt.Sprintf("deleted budget %q", budget.Name),
	}, nil
}

func (d Dispatcher) linkGoal(user models.User, c LinkGoal) (Outcome, error) {
	budget, err := d.findBudget(user, c.BudgetName)
	if err != nil {
		return Outcome{}, err
	}

	goal, err := d.findGoal(user, c.GoalName)
	if err != nil {
		return Outcome{}, err
	}

	err = d.DB.Model(&budget).Select("LinkedGoalID").Updates(models.Budget{LinkedGoalID: &goal.ID}).Error
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Verb:    c.Verb(),
		Message: fmt.Sprintf("linked goal %q to budget %q", goal.Name, budget.Name),
	}, nil
}

func (d Dispatcher) addFunds(user models.User, c AddFunds) (Outcome, error) {
	goal, err := d.findGoal(user, c.GoalName)
	if err != nil {
		return Outcome{}, err
	}

	err = goal.AddFunds(d.DB, c.Amount, models.ProgressSourceAdvisor, time.Now())
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Verb:    c.Verb(),
		Message: fmt.Sprintf("added %s to goal %q", c.Amount, goal.Name),
	}, nil
}

// findBudget resolves a budget of the user by name. Matching is case
// insensitive and supports glob patterns, an exact match always wins.
func (d Dispatcher) findBudget(user models.User, name string) (models.Budget, error) {
	var budgets []models.Budget
	err := d.DB.Where("user_id = ?", user.ID).Find(&budgets).Error
	if err != nil {
		return models.Budget{}, err
	}

	var matches []models.Budget
	for _, b := range budgets {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}

		if glob.Glob(strings.ToLower(name), strings.ToLower(b.Name)) {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return models.Budget{}, fmt.Errorf("%w budget named %q", models.ErrResourceNotFound, name)
	case 1:
		return matches[0], nil
	}

	return models.Budget{}, fmt.Errorf("%w: budget %q", ErrAmbiguousName, name)
}

// findGoal resolves a goal of the user by name, same matching rules as
// findBudget.
func (d Dispatcher) findGoal(user models.User, name string) (models.SavingsGoal, error) {
	var goals []models.SavingsGoal
	err := d.DB.Where("user_id = ?", user.ID).Find(&goals).Error
	if err != nil {
		return models.SavingsGoal{}, err
	}

	var matches []models.SavingsGoal
	for _, g := range goals {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}

		if glob.Glob(strings.ToLower(name), strings.ToLower(g.Name)) {
			matches = append(matches, g)
		}
	}

	switch len(matches) {
	case 0:
		return models.SavingsGoal{}, fmt.Errorf("%w goal named %q", models.ErrResourceNotFound, name)
	case 1:
		return matches[0], nil
	}

	return models.SavingsGoal{}, fmt.Errorf("%w: goal %q", ErrAmbiguousName, name)
}
