package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
)

// GET    /v1/notifications      (200 OK)
// DELETE /v1/notifications/{id} (204 No content)
// DELETE /v1/notifications      (204 No content)

type NotificationsHandler struct {
	notifier port.Notifier
}

func RegisterNotifications(mux *http.ServeMux, notifier port.Notifier) {
	h := NotificationsHandler{notifier}
	mux.HandleFunc("GET /v1/notifications", h.GetNotifications)
	mux.HandleFunc("DELETE /v1/notifications/{id}", h.DeleteNotification)
	mux.HandleFunc("DELETE /v1/notifications", h.DeleteAll)
}

func (h NotificationsHandler) GetNotifications(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "NotificationsHandler.GetNotifications"
	log := slog.With("op", op)

	list := h.notifier.Notifications()
	out := make([]Notification, len(list))
	for i, n := range list {
		out[i] = toNotification(n)
	}
	writeJSON(w, log, out)
}

func (h NotificationsHandler) DeleteNotification(
	w http.ResponseWriter, r *http.Request,
) {
	h.notifier.Remove(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h NotificationsHandler) DeleteAll(
	w http.ResponseWriter, r *http.Request,
) {
	h.notifier.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func toNotification(n domain.Notification) Notification {
	return Notification{
		ID:         n.ID,
		Kind:       string(n.Kind),
		Title:      n.Title,
		Message:    n.Message,
		DurationMS: n.Duration.Milliseconds(),
	}
}
