package notify

import (
	"net/http"

	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type FeedResponse struct {
	Badge *Notification  `json:"badge,omitempty"`
	Feed  []Notification `json:"feed"`
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/notifications", handler.HandleList).Methods("GET", "OPTIONS")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notify.list")
	defer span.End()

	limit := pkg.IntOrDefault(r.URL.Query().Get("limit"), 10)
	feed, err := handler.store.Latest(ctx, limit)
	if err != nil {
		log.Errorf("list notifications: %s", err)
		http.Error(w, "error, failed to get notifications", http.StatusInternalServerError)
		return
	}

	resp := FeedResponse{Feed: feed}
	badge, ok, err := handler.store.Badge(ctx)
	if err != nil {
		log.Errorf("get mission badge: %s", err)
	} else if ok {
		resp.Badge = &badge
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}
