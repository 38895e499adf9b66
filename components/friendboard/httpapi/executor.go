package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-friendboard/components/friendboard/commands"
)

// Executor is the command surface transports program against.
type Executor interface {
	Create(ctx context.Context, input commands.CreateWidgetInput) error
	Update(ctx context.Context, input commands.UpdateWidgetInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	AddFriend(ctx context.Context, input commands.AddFriendInput) error
	RemoveFriend(ctx context.Context, input commands.RemoveFriendInput) error
}

// CommandExecutor implements Executor over go-command Commanders.
type CommandExecutor struct {
	CreateCommander       gocommand.Commander[commands.CreateWidgetInput]
	UpdateCommander       gocommand.Commander[commands.UpdateWidgetInput]
	RemoveCommander       gocommand.Commander[commands.RemoveWidgetInput]
	ReorderCommander      gocommand.Commander[commands.ReorderWidgetsInput]
	AddFriendCommander    gocommand.Commander[commands.AddFriendInput]
	RemoveFriendCommander gocommand.Commander[commands.RemoveFriendInput]
}

var errCommanderMissing = errors.New("httpapi: commander not configured")

// Create places a widget instance.
func (e *CommandExecutor) Create(ctx context.Context, input commands.CreateWidgetInput) error {
	if e.CreateCommander == nil {
		return errCommanderMissing
	}
	return e.CreateCommander.Execute(ctx, input)
}

// Update patches a widget instance.
func (e *CommandExecutor) Update(ctx context.Context, input commands.UpdateWidgetInput) error {
	if e.UpdateCommander == nil {
		return errCommanderMissing
	}
	return e.UpdateCommander.Execute(ctx, input)
}

// Remove deletes a widget instance.
func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	if e.RemoveCommander == nil {
		return errCommanderMissing
	}
	return e.RemoveCommander.Execute(ctx, input)
}

// Reorder applies a new instance ordering.
func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	if e.ReorderCommander == nil {
		return errCommanderMissing
	}
	return e.ReorderCommander.Execute(ctx, input)
}

// AddFriend registers a friend record.
func (e *CommandExecutor) AddFriend(ctx context.Context, input commands.AddFriendInput) error {
	if e.AddFriendCommander == nil {
		return errCommanderMissing
	}
	return e.AddFriendCommander.Execute(ctx, input)
}

// RemoveFriend deletes a friend record.
func (e *CommandExecutor) RemoveFriend(ctx context.Context, input commands.RemoveFriendInput) error {
	if e.RemoveFriendCommander == nil {
		return errCommanderMissing
	}
	return e.RemoveFriendCommander.Execute(ctx, input)
}
