package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// WidgetListInput identifies the friend whose instances to list.
type WidgetListInput struct {
	FriendID string
}

type widgetService interface {
	ListWidgets(ctx context.Context, friendID string) ([]friendboard.WidgetInstance, error)
}

// WidgetListQuery fetches a friend's ordered instances.
type WidgetListQuery struct {
	service widgetService
}

// NewWidgetListQuery builds the query.
func NewWidgetListQuery(service widgetService) *WidgetListQuery {
	return &WidgetListQuery{service: service}
}

var _ gocommand.Querier[WidgetListInput, []friendboard.WidgetInstance] = (*WidgetListQuery)(nil)

// Query lists the instances.
func (q *WidgetListQuery) Query(ctx context.Context, input WidgetListInput) ([]friendboard.WidgetInstance, error) {
	return q.service.ListWidgets(ctx, input.FriendID)
}
