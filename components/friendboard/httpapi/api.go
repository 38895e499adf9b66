package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	friendboard "github.com/goliatone/go-friendboard/components/friendboard"
	"github.com/goliatone/go-friendboard/components/friendboard/commands"
)

// Handlers exposes HTTP endpoints backed by shared commands. The navigation
// path on each input is always taken from the request URL, never from the
// payload, so identity cannot be spoofed through the body.
type Handlers struct {
	Create       gocommand.Commander[commands.CreateWidgetInput]
	Update       gocommand.Commander[commands.UpdateWidgetInput]
	Remove       gocommand.Commander[commands.RemoveWidgetInput]
	Reorder      gocommand.Commander[commands.ReorderWidgetsInput]
	AddFriend    gocommand.Commander[commands.AddFriendInput]
	RemoveFriend gocommand.Commander[commands.RemoveFriendInput]
}

func (h *Handlers) HandleCreateWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.CreateWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.Path = r.URL.Path
	if err := h.Create.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, instanceID string) {
	var payload commands.UpdateWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.Path = r.URL.Path
	payload.InstanceID = instanceID
	if err := h.Update.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, instanceID string) {
	input := commands.RemoveWidgetInput{Path: r.URL.Path, InstanceID: instanceID}
	if err := h.Remove.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.Path = r.URL.Path
	if err := h.Reorder.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleAddFriend(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddFriendInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.Path = r.URL.Path
	if err := h.AddFriend.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveFriend(w http.ResponseWriter, r *http.Request, friendID string) {
	input := commands.RemoveFriendInput{Path: r.URL.Path, FriendID: friendID}
	if err := h.RemoveFriend.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps engine errors onto HTTP status codes. Conflicts are
// retryable; the caller should re-fetch the instance list first.
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
