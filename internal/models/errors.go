package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrAllocationExceedsIncome is always wrapped with the amount by which
	// the requested allocation exceeds the monthly income.
	ErrAllocationExceedsIncome = errors.New("budget allocations would exceed the monthly income")

	ErrAllocationNegative           = errors.New("allocation amounts must not be negative")
	ErrBudgetNameNotUnique          = errors.New("the budget name is already in use, budget names must be unique per user")
	ErrGoalNameNotUnique            = errors.New("the goal name is already in use, goal names must be unique per user")
	ErrGoalTargetNotPositive        = errors.New("goal target amounts must be larger than zero")
	ErrGoalBalanceNegative          = errors.New("the goal balance must not be negative")
	ErrContributionNotPositive      = errors.New("goal contributions must be larger than zero")
	ErrTransactionAmountNotPositive = errors.New("transaction amounts must be larger than zero")
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be income or expense")
	ErrTimezoneInvalid              = errors.New("the timezone must be a valid IANA timezone name")
)
