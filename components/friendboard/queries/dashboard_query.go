package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
)

// DashboardInput identifies a page request. Path drives identity resolution;
// Slug selects the friend.
type DashboardInput struct {
	Path string
	Slug string
}

type dashboardService interface {
	Dashboard(ctx context.Context, path, slug string) (friendboard.DashboardPage, error)
}

// DashboardQuery composes the renderable page for one friend.
type DashboardQuery struct {
	service dashboardService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service dashboardService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[DashboardInput, friendboard.DashboardPage] = (*DashboardQuery)(nil)

// Query resolves the page.
func (q *DashboardQuery) Query(ctx context.Context, input DashboardInput) (friendboard.DashboardPage, error) {
	return q.service.Dashboard(ctx, input.Path, input.Slug)
}
