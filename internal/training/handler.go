package training

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=training_test

type programsRepo interface {
	CreateProgram(ctx context.Context, program Program) (*Program, error)
	ListPrograms(ctx context.Context) ([]Program, error)
	DeleteProgram(ctx context.Context, id int) error
}

type DeleteProgramResponse struct {
	DeletedID int `json:"deletedId"`
}

type StartRequest struct {
	BlueprintSessionID int `json:"blueprintSessionId"`
	UserID             int `json:"userId"`
}

// numericInput accepts a JSON number or string, so malformed input can be
// coerced instead of rejected.
type numericInput string

func (n *numericInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = numericInput(s)
		return nil
	}
	*n = numericInput(data)
	return nil
}

type SetRequest struct {
	Reps   numericInput `json:"reps"`
	Weight numericInput `json:"weight"`
}

type Handler struct {
	engine        *Engine
	programs      programsRepo
	defaultUserID int
}

func NewHandler(engine *Engine, programs programsRepo, defaultUserID int) *Handler {
	return &Handler{
		engine:        engine,
		programs:      programs,
		defaultUserID: defaultUserID,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/programs", handler.HandleCreateProgram).Methods("POST", "OPTIONS")
	r.HandleFunc("/programs", handler.HandleListPrograms).Methods("GET", "OPTIONS")
	r.HandleFunc("/programs/{id}", handler.HandleDeleteProgram).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/training/start", handler.HandleStart).Methods("POST", "OPTIONS")
	r.HandleFunc("/training/{sid}", handler.HandleGet).Methods("GET", "OPTIONS")
	r.HandleFunc("/training/{sid}/sets/{ordinal}", handler.HandleRecordSet).Methods("PUT", "OPTIONS")
	r.HandleFunc("/training/{sid}/advance", handler.HandleAdvance).Methods("POST", "OPTIONS")
}

func (handler *Handler) HandleCreateProgram(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.createprogram")
	defer span.End()

	if !isJSON(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var program Program
	if err := json.NewDecoder(r.Body).Decode(&program); err != nil {
		log.Tracef("create program, unmarshal json: %s", err)
		http.Error(w, "create program failed", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(program.Name) == "" {
		http.Error(w, "error, program name empty", http.StatusBadRequest)
		return
	}
	for _, bs := range program.Sessions {
		if strings.TrimSpace(bs.Name) == "" {
			http.Error(w, "error, session name empty", http.StatusBadRequest)
			return
		}
		for _, ex := range bs.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				http.Error(w, "error, exercise name empty", http.StatusBadRequest)
				return
			}
		}
	}

	created, err := handler.programs.CreateProgram(ctx, program)
	if err != nil {
		log.Errorf("create program [%s]: %s", program.Name, err)
		http.Error(w, "error, failed to create program", http.StatusInternalServerError)
		return
	}

	log.Debugf("program %d created: %s", created.ID, created.Name)
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleListPrograms(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.listprograms")
	defer span.End()

	programs, err := handler.programs.ListPrograms(ctx)
	if err != nil {
		log.Errorf("list programs: %s", err)
		http.Error(w, "error, failed to list programs", http.StatusInternalServerError)
		return
	}
	if programs == nil {
		programs = []Program{}
	}

	pkg.WriteJSON(w, programs, http.StatusOK)
}

func (handler *Handler) HandleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.deleteprogram")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.programs.DeleteProgram(ctx, id); err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			http.Error(w, "error, program not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete program %d: %s", id, err)
		http.Error(w, "error, failed to delete program", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteProgramResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.start")
	defer span.End()

	if !isJSON(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "start session failed", http.StatusBadRequest)
		return
	}
	if req.BlueprintSessionID <= 0 {
		http.Error(w, "error, blueprint session id missing", http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 {
		req.UserID = handler.defaultUserID
	}

	view, err := handler.engine.Start(ctx, req.UserID, req.BlueprintSessionID)
	if err != nil {
		if errors.Is(err, ErrNoExercises) {
			http.Error(w, "error, blueprint session has no exercises", http.StatusUnprocessableEntity)
			return
		}
		log.Errorf("start session of blueprint %d: %s", req.BlueprintSessionID, err)
		http.Error(w, "error, failed to start session", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, view, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.get")
	defer span.End()

	sessionID, err := strconv.Atoi(mux.Vars(r)["sid"])
	if err != nil {
		http.Error(w, "error, session id NaN", http.StatusBadRequest)
		return
	}

	view, err := handler.engine.Get(ctx, sessionID)
	if err != nil {
		writeEngineError(w, sessionID, err)
		return
	}

	pkg.WriteJSON(w, view, http.StatusOK)
}

func (handler *Handler) HandleRecordSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.recordset")
	defer span.End()

	vars := mux.Vars(r)
	sessionID, err := strconv.Atoi(vars["sid"])
	if err != nil {
		http.Error(w, "error, session id NaN", http.StatusBadRequest)
		return
	}
	ordinal, err := strconv.Atoi(vars["ordinal"])
	if err != nil {
		http.Error(w, "error, ordinal NaN", http.StatusBadRequest)
		return
	}

	var req SetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "record set failed", http.StatusBadRequest)
		return
	}

	view, err := handler.engine.RecordSetInput(ctx, sessionID, ordinal, string(req.Reps), string(req.Weight))
	if err != nil {
		writeEngineError(w, sessionID, err)
		return
	}

	pkg.WriteJSON(w, view, http.StatusOK)
}

func (handler *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.advance")
	defer span.End()

	sessionID, err := strconv.Atoi(mux.Vars(r)["sid"])
	if err != nil {
		http.Error(w, "error, session id NaN", http.StatusBadRequest)
		return
	}

	result, err := handler.engine.Advance(ctx, sessionID)
	if err != nil {
		writeEngineError(w, sessionID, err)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func writeEngineError(w http.ResponseWriter, sessionID int, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "error, session not found", http.StatusNotFound)
	case errors.Is(err, ErrSessionFinished):
		http.Error(w, "error, session already finished", http.StatusConflict)
	case errors.Is(err, ErrSetsStored):
		http.Error(w, "error, sets already stored, advance to continue", http.StatusConflict)
	case errors.Is(err, ErrInvalidOrdinal):
		http.Error(w, "error, invalid set ordinal", http.StatusBadRequest)
	default:
		log.Errorf("training session %d: %s", sessionID, err)
		http.Error(w, "error, training session failed", http.StatusInternalServerError)
	}
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
