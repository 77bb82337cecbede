package missions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	engine        *Engine
	defaultUserID int
}

func NewHandler(engine *Engine, defaultUserID int) *Handler {
	return &Handler{
		engine:        engine,
		defaultUserID: defaultUserID,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/missions/daily", h.HandleListDaily).Methods("GET", "OPTIONS")
	r.HandleFunc("/missions/weekly", h.HandleListWeekly).Methods("GET", "OPTIONS")
	r.HandleFunc("/missions/summary", h.HandleSummary).Methods("GET", "OPTIONS")
	r.HandleFunc("/missions/events", h.HandleEvents).Methods("GET")
	r.HandleFunc("/missions/{id}/complete", h.HandleComplete).Methods("POST", "OPTIONS")
}

func (h *Handler) HandleListDaily(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, h.engine.GetDaily(), http.StatusOK)
}

func (h *Handler) HandleListWeekly(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, h.engine.GetWeekly(), http.StatusOK)
}

type summaryResponse struct {
	Summary
	Efficiency float64 `json:"efficiency"`
}

func (h *Handler) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	s := h.engine.Summary()
	pkg.WriteJSON(w, summaryResponse{Summary: s, Efficiency: s.Efficiency()}, http.StatusOK)
}

type completeResponse struct {
	Mission  Mission `json:"mission"`
	Rewarded bool    `json:"rewarded"`
}

func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.missions.complete")
	defer span.End()

	missionID := mux.Vars(r)["id"]
	if _, ok := h.engine.Get(missionID); !ok {
		http.Error(w, "mission not found", http.StatusNotFound)
		return
	}

	userID := h.defaultUserID
	if rawUser := r.URL.Query().Get("user"); rawUser != "" {
		parsed, err := strconv.Atoi(rawUser)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		userID = parsed
	}

	rewarded, err := h.engine.Complete(ctx, userID, missionID)
	if err != nil {
		log.Errorf("complete mission %s: %s", missionID, err)
		http.Error(w, "complete mission failed", http.StatusInternalServerError)
		return
	}

	mission, _ := h.engine.Get(missionID)
	pkg.WriteJSON(w, completeResponse{Mission: mission, Rewarded: rewarded}, http.StatusOK)
}

// HandleEvents streams catalog change events as server-sent events until
// the client goes away.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, unsubscribe := h.engine.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			raw, err := json.Marshal(event)
			if err != nil {
				log.Errorf("marshal mission event: %s", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, raw); err != nil {
				log.Debugf("mission events stream closed: %s", err)
				return
			}
			flusher.Flush()
		}
	}
}
