// Package advisor implements the typed command interface the AI advisor
// uses to act on a user's finances.
//
// Commands are dispatched through the same validated model operations as
// direct user actions, there is no privilege distinction between a human
// and an advisor-originated call.
package advisor

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Command is one advisor action. The concrete types below form a closed
// set, one per verb the advisor can emit.
type Command interface {
	// Verb returns the wire name of the command.
	Verb() string
}

// CreateBudget creates a new budget with an initial allocation pair.
type CreateBudget struct {
	Name              string
	Note              string
	ExpenseAllocation decimal.Decimal
	SavingsAllocation decimal.Decimal
	LinkedGoal        string // goal name, empty for no link
}

func (CreateBudget) Verb() string { return "CREATE_BUDGET" }

// EditBudget updates an existing budget. Nil fields are left unchanged.
type EditBudget struct {
	ID                uuid.UUID
	Name              *string
	Note              *string
	ExpenseAllocation *decimal.Decimal
	SavingsAllocation *decimal.Decimal
	LinkedGoal        *string // goal name, "none" or empty clears the link
}

func (EditBudget) Verb() string { return "EDIT_BUDGET" }

// DeleteBudget deletes a budget. The name is only used for confirmation
// messaging.
type DeleteBudget struct {
	ID   uuid.UUID
	Name string
}

func (DeleteBudget) Verb() string { return "DELETE_BUDGET" }

// LinkGoal sets a budget's transfer target, both resolved by name.
type LinkGoal struct {
	BudgetName string
	GoalName   string
}

func (LinkGoal) Verb() string { return "LINK_GOAL_TO_BUDGET" }

// AddFunds books a contribution onto a goal resolved by name.
type AddFunds struct {
	GoalName string
	Amount   decimal.Decimal
}

func (AddFunds) Verb() string { return "ADD_FUNDS_TO_GOAL" }

var (
	ErrUnknownCommand   = errors.New("the command is not one the advisor can execute")
	ErrMalformedCommand = errors.New("the command arguments are malformed")
	ErrAmbiguousName    = errors.New("the name matches more than one resource, be more specific")
)
