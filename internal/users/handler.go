package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/levelup/internal/leveling"
	"github.com/2beens/levelup/internal/missions"
	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersRepo interface {
	Get(ctx context.Context, id int) (*User, error)
	UpdateProfile(ctx context.Context, user User) error
}

type missionsSummary interface {
	Summary() missions.Summary
}

type ProfileRequest struct {
	Name      string     `json:"name"`
	Weight    float64    `json:"weight"`
	Height    float64    `json:"height"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

type ProgressResponse struct {
	leveling.Progress
	Missions          missions.Summary `json:"missions"`
	MissionEfficiency float64          `json:"missionEfficiency"`
	KcalRequirement   *float64         `json:"kcalRequirement,omitempty"`
	WaterRequirement  float64          `json:"waterRequirement"`
}

type Handler struct {
	repo                 usersRepo
	missions             missionsSummary
	waterExerciseMinutes int
}

func NewHandler(repo usersRepo, missions missionsSummary, waterExerciseMinutes int) *Handler {
	return &Handler{
		repo:                 repo,
		missions:             missions,
		waterExerciseMinutes: waterExerciseMinutes,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id}", handler.HandleGet).Methods("GET", "OPTIONS")
	r.HandleFunc("/users/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS")
	r.HandleFunc("/users/{id}/progress", handler.HandleProgress).Methods("GET", "OPTIONS")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	user, ok := handler.loadUser(ctx, w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, user, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	user, ok := handler.loadUser(ctx, w, r)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update user, unmarshal json: %s", err)
		http.Error(w, "error, invalid profile", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}
	if req.Weight < 0 || req.Height < 0 {
		http.Error(w, "error, invalid body measurements", http.StatusBadRequest)
		return
	}

	user.Name = req.Name
	user.Weight = req.Weight
	user.Height = req.Height
	user.BirthDate = req.BirthDate
	if err := handler.repo.UpdateProfile(ctx, *user); err != nil {
		log.Errorf("update user %d: %s", user.ID, err)
		http.Error(w, "error, failed to update user", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

// HandleProgress returns the leveling and mission performance summary.
func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.progress")
	defer span.End()

	user, ok := handler.loadUser(ctx, w, r)
	if !ok {
		return
	}

	summary := handler.missions.Summary()
	resp := ProgressResponse{
		Progress:          leveling.ProgressOf(user.XP, user.Level),
		Missions:          summary,
		MissionEfficiency: summary.Efficiency(),
		WaterRequirement:  user.WaterRequirementLiters(handler.waterExerciseMinutes),
	}
	if kcal, ok := user.DailyKcalRequirement(time.Now()); ok {
		resp.KcalRequirement = &kcal
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) loadUser(ctx context.Context, w http.ResponseWriter, r *http.Request) (*User, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return nil, false
	}

	user, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "error, user not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		log.Errorf("get user %d: %s", id, err)
		http.Error(w, "error, failed to get user", http.StatusInternalServerError)
		return nil, false
	}
	return user, true
}
