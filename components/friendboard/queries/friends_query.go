package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// FriendListInput has no parameters; the type exists for the Querier shape.
type FriendListInput struct{}

type friendService interface {
	Friends(ctx context.Context) ([]friendboard.FriendRecord, error)
}

// FriendListQuery lists friend records for the management views.
type FriendListQuery struct {
	service friendService
}

// NewFriendListQuery builds the query.
func NewFriendListQuery(service friendService) *FriendListQuery {
	return &FriendListQuery{service: service}
}

var _ gocommand.Querier[FriendListInput, []friendboard.FriendRecord] = (*FriendListQuery)(nil)

// Query lists friends.
func (q *FriendListQuery) Query(ctx context.Context, _ FriendListInput) ([]friendboard.FriendRecord, error) {
	return q.service.Friends(ctx)
}
