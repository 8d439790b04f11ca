package application

import "context"

// Command is a request to change study planner state.
type Command interface {
	CommandName() string
}

// CommandHandler executes one command type and returns its result.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}
