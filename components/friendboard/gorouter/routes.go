package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
	"github.com/goliatone/go-friendboard/components/friendboard/commands"
	"github.com/goliatone/go-friendboard/components/friendboard/httpapi"
)

// PathResolver yields the navigation path used for identity resolution. The
// default returns the admin base path for routes mounted under it, which is
// what identity derivation needs; applications can override to forward the
// exact request path.
type PathResolver func(router.Context) string

// Config wires go-router with the friendboard service, API, and hooks.
type Config[T any] struct {
	Router       router.Router[T]
	Service      *friendboard.Service
	API          httpapi.Executor
	Broadcast    *friendboard.BroadcastHook
	PathResolver PathResolver
	BasePath     string
	Routes       RouteConfig
}

// RouteConfig customizes the relative paths used for engine endpoints.
type RouteConfig struct {
	Page      string
	Friends   string
	FriendID  string
	Widgets   string
	WidgetID  string
	Reorder   string
	Mode      string
	Catalog   string
	WebSocket string
}

func (c *Config[T]) routes() RouteConfig {
	routes := c.Routes
	if routes.Page == "" {
		routes.Page = "/pages/:slug"
	}
	if routes.Friends == "" {
		routes.Friends = "/friends"
	}
	if routes.FriendID == "" {
		routes.FriendID = "/friends/:id"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/widgets/:id"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/widgets/reorder"
	}
	if routes.Mode == "" {
		routes.Mode = "/mode"
	}
	if routes.Catalog == "" {
		routes.Catalog = "/catalog"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}

// Register mounts friend pages, the admin API, and the websocket feed on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Service == nil {
		return errors.New("gorouter: service is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = friendboard.AdminPathPrefix
	}
	resolver := cfg.PathResolver
	if resolver == nil {
		resolver = func(router.Context) string { return base }
	}

	// Public friend page: identity derives from the page path itself, so a
	// visitor always reads as friend.
	cfg.Router.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		slug := ctx.Param("slug")
		if slug == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("friend slug is required"))
		}
		page, err := cfg.Service.Dashboard(ctx.Context(), "/"+slug, slug)
		if err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, page)
	}))

	group := cfg.Router.Group(base)

	// Admin page view: same composition, admin identity, current mode.
	group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		slug := ctx.Param("slug")
		if slug == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("friend slug is required"))
		}
		page, err := cfg.Service.Dashboard(ctx.Context(), resolver(ctx), slug)
		if err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, page)
	}))

	group.Get(routes.Catalog, router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, cfg.Service.Catalog())
	}))

	group.Post(routes.Mode, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Mode friendboard.Mode `json:"mode"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var mode friendboard.Mode
		switch payload.Mode {
		case friendboard.ModeEdit:
			mode = cfg.Service.EnterEdit(resolver(ctx))
		case friendboard.ModeView:
			mode = cfg.Service.EnterView()
		default:
			return respondError(ctx, http.StatusBadRequest, errors.New("mode must be view or edit"))
		}
		return ctx.JSON(http.StatusOK, map[string]string{"mode": string(mode)})
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, resolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver PathResolver, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.CreateWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Path = resolver(ctx)
		if err := api.Create(ctx.Context(), payload); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Put(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget instance id is required"))
		}
		var payload commands.UpdateWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Path = resolver(ctx)
		payload.InstanceID = id
		if err := api.Update(ctx.Context(), payload); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget instance id is required"))
		}
		input := commands.RemoveWidgetInput{Path: resolver(ctx), InstanceID: id}
		if err := api.Remove(ctx.Context(), input); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderWidgetsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Path = resolver(ctx)
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Friends, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddFriendInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Path = resolver(ctx)
		if err := api.AddFriend(ctx.Context(), payload); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.FriendID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("friend id is required"))
		}
		input := commands.RemoveFriendInput{Path: resolver(ctx), FriendID: id}
		if err := api.RemoveFriend(ctx.Context(), input); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *friendboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, friendboard.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, friendboard.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, friendboard.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, friendboard.ErrUnknownType),
		errors.Is(err, friendboard.ErrMultiplicity),
		errors.Is(err, friendboard.ErrSetMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
