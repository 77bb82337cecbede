package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/internal/users"
	"github.com/2beens/levelup/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type WeightRequest struct {
	UserID int     `json:"userId"`
	Weight float64 `json:"weight"`
}

type WeightResponse struct {
	Weight           float64 `json:"weight"`
	MissionCompleted bool    `json:"missionCompleted"`
}

type Handler struct {
	tracker       *Tracker
	series        *Series
	defaultUserID int
}

func NewHandler(tracker *Tracker, series *Series, defaultUserID int) *Handler {
	return &Handler{
		tracker:       tracker,
		series:        series,
		defaultUserID: defaultUserID,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/records/water", handler.HandleAddWater).Methods("POST", "OPTIONS")
	r.HandleFunc("/records/sleep", handler.HandleAddSleep).Methods("POST", "OPTIONS")
	r.HandleFunc("/records/flexibility", handler.HandleAddFlexibility).Methods("POST", "OPTIONS")
	r.HandleFunc("/records/endurance", handler.HandleAddEndurance).Methods("POST", "OPTIONS")
	r.HandleFunc("/records/meal", handler.HandleAddMeal).Methods("POST", "OPTIONS")
	r.HandleFunc("/records/weight", handler.HandleAddWeight).Methods("POST", "OPTIONS")
	r.HandleFunc("/stats/{metric}", handler.HandleStats).Methods("GET", "OPTIONS")
}

// decode reads a JSON record body and fills in the default user.
func (handler *Handler) decode(w http.ResponseWriter, r *http.Request, v any, userID *int) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("add record, unmarshal json: %s", err)
		http.Error(w, "error, invalid record", http.StatusBadRequest)
		return false
	}
	if *userID <= 0 {
		*userID = handler.defaultUserID
	}
	return true
}

func writeAddResult(w http.ResponseWriter, kind string, result any, err error) {
	if errors.Is(err, ErrInvalidRecord) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("add %s record: %s", kind, err)
		http.Error(w, "error, failed to add "+kind+" record", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (handler *Handler) HandleAddWater(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.water")
	defer span.End()

	var water Water
	if !handler.decode(w, r, &water, &water.UserID) {
		return
	}
	result, err := handler.tracker.AddWater(ctx, water)
	writeAddResult(w, "water", result, err)
}

func (handler *Handler) HandleAddSleep(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.sleep")
	defer span.End()

	var sleep Sleep
	if !handler.decode(w, r, &sleep, &sleep.UserID) {
		return
	}
	result, err := handler.tracker.AddSleep(ctx, sleep)
	writeAddResult(w, "sleep", result, err)
}

func (handler *Handler) HandleAddFlexibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.flexibility")
	defer span.End()

	var flexibility Flexibility
	if !handler.decode(w, r, &flexibility, &flexibility.UserID) {
		return
	}
	result, err := handler.tracker.AddFlexibility(ctx, flexibility)
	writeAddResult(w, "flexibility", result, err)
}

func (handler *Handler) HandleAddEndurance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.endurance")
	defer span.End()

	var endurance Endurance
	if !handler.decode(w, r, &endurance, &endurance.UserID) {
		return
	}
	result, err := handler.tracker.AddEndurance(ctx, endurance)
	writeAddResult(w, "endurance", result, err)
}

func (handler *Handler) HandleAddMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.meal")
	defer span.End()

	var meal Meal
	if !handler.decode(w, r, &meal, &meal.UserID) {
		return
	}
	result, err := handler.tracker.AddMeal(ctx, meal)
	writeAddResult(w, "meal", result, err)
}

func (handler *Handler) HandleAddWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.weight")
	defer span.End()

	var req WeightRequest
	if !handler.decode(w, r, &req, &req.UserID) {
		return
	}

	completed, err := handler.tracker.AddWeight(ctx, req.UserID, req.Weight)
	if errors.Is(err, users.ErrUserNotFound) {
		http.Error(w, "error, user not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, ErrInvalidRecord) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("add weight of user %d: %s", req.UserID, err)
		http.Error(w, "error, failed to add weight", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, WeightResponse{Weight: req.Weight, MissionCompleted: completed}, http.StatusCreated)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.stats")
	defer span.End()

	metric, err := ParseMetric(mux.Vars(r)["metric"])
	if err != nil {
		http.Error(w, "error, unknown metric", http.StatusNotFound)
		return
	}

	userID := handler.defaultUserID
	if rawUser := r.URL.Query().Get("user"); rawUser != "" {
		userID, err = strconv.Atoi(rawUser)
		if err != nil || userID <= 0 {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
	}

	result, err := handler.series.Get(ctx, userID, metric)
	if err != nil {
		log.Errorf("series %s of user %d: %s", metric, userID, err)
		http.Error(w, "error, failed to get stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}
