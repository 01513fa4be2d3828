package advisor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// tokenPattern matches the action tokens the LLM gateway embeds into chat
// responses, e.g. [CREATE_BUDGET: Fun | $500 | $100 | none | Going out].
var tokenPattern = regexp.MustCompile(`\[([A-Z_]+):([^\]]*)\]`)

// Parse extracts all action tokens from a chat response and converts them
// into commands. Text outside of tokens is ignored.
func Parse(text string) ([]Command, error) {
	var commands []Command

	for _, match := range tokenPattern.FindAllStringSubmatch(text, -1) {
		cmd, err := parseToken(match[1], splitArgs(match[2]))
		if err != nil {
			return nil, err
		}

		commands = append(commands, cmd)
	}

	return commands, nil
}

func splitArgs(raw string) []string {
	parts := strings.Split(raw, "|")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		parts[i] = p
	}

	return parts
}

func parseToken(verb string, args []string) (Command, error) {
	switch verb {
	case "CREATE_BUDGET":
		return parseCreateBudget(args)
	case "EDIT_BUDGET":
		return parseEditBudget(args)
	case "DELETE_BUDGET":
		return parseDeleteBudget(args)
	case "LINK_GOAL_TO_BUDGET":
		return parseLinkGoal(args)
	case "ADD_FUNDS_TO_GOAL":
		return parseAddFunds(args)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}

// parseAmount parses a dollar amount as the advisor writes it, e.g.
// "$1,200.50".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not an amount", ErrMalformedCommand, s)
	}

	return amount, nil
}

// linkedGoalName normalizes the goal argument, the advisor writes "none"
// for an unlinked budget.
func linkedGoalName(s string) string {
	if strings.EqualFold(s, "none") {
		return ""
	}

	return s
}

func parseCreateBudget(args []string) (Command, error) {
	if len(args) < 4 || args[0] == "" {
		return nil, fmt.Errorf("%w: CREATE_BUDGET needs name, amounts and goal", ErrMalformedCommand)
	}

	expense, err := parseAmount(args[1])
	if err != nil {
		return nil, err
	}

	savings, err := parseAmount(args[2])
	if err != nil {
		return nil, err
	}

	cmd := CreateBudget{
		Name:              args[0],
		ExpenseAllocation: expense,
		SavingsAllocation: savings,
		LinkedGoal:        linkedGoalName(args[3]),
	}

	if len(args) > 4 {
		cmd.Note = args[4]
	}

	return cmd, nil
}

func parseEditBudget(args []string) (Command, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: EDIT_BUDGET needs a budget ID", ErrMalformedCommand)
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a budget ID", ErrMalformedCommand, args[0])
	}

	cmd := EditBudget{ID: id}

	// Empty fields are left unchanged
	if len(args) > 1 && args[1] != "" {
		cmd.Name = &args[1]
	}

	if len(args) > 2 && args[2] != "" {
		expense, err := parseAmount(args[2])
		if err != nil {
			return nil, err
		}
		cmd.ExpenseAllocation = &expense
	}

	if len(args) > 3 && args[3] != "" {
		savings, err := parseAmount(args[3])
		if err != nil {
			return nil, err
		}
		cmd.SavingsAllocation = &savings
	}

	if len(args) > 4 && args[4] != "" {
		goal := linkedGoalName(args[4])
		cmd.LinkedGoal = &goal
	}

	if len(args) > 5 && args[5] != "" {
		cmd.Note = &args[5]
	}

	return cmd, nil
}

func parseDeleteBudget(args []string) (Command, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: DELETE_BUDGET needs a budget ID", ErrMalformedCommand)
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a budget ID", ErrMalformedCommand, args[0])
	}

	cmd := DeleteBudget{ID: id}
	if len(args) > 1 {
		cmd.Name = args[1]
	}

	return cmd, nil
}

func parseLinkGoal(args []string) (Command, error) {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return nil, fmt.Errorf("%w: LINK_GOAL_TO_BUDGET needs a budget name and a goal name", ErrMalformedCommand)
	}

	return LinkGoal{BudgetName: args[0], GoalName: args[1]}, nil
}

func parseAddFunds(args []string) (Command, error) {
	if len(args) < 2 || args[0] == "" {
		return nil, fmt.Errorf("%w: ADD_FUNDS_TO_GOAL needs a goal name and an amount", ErrMalformedCommand)
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return nil, err
	}

	return AddFunds{GoalName: args[0], Amount: amount}, nil
}
