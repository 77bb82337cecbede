package training

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// CreateProgram stores a program together with its blueprint sessions and
// their exercises in one transaction. Positions follow slice order.
func (r *Repo) CreateProgram(ctx context.Context, program Program) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.createprogram")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if strings.TrimSpace(program.Name) == "" {
		return nil, errors.New("program name empty")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = tx.QueryRow(ctx,
		`INSERT INTO program (name) VALUES ($1) RETURNING id`, program.Name,
	).Scan(&program.ID); err != nil {
		return nil, fmt.Errorf("insert program: %w", err)
	}

	for i := range program.Sessions {
		bs := &program.Sessions[i]
		bs.ProgramID = program.ID
		bs.Position = i
		if err = tx.QueryRow(ctx, `
			INSERT INTO blueprint_session (program_id, name, position)
			VALUES ($1, $2, $3)
			RETURNING id
		`, bs.ProgramID, bs.Name, bs.Position).Scan(&bs.ID); err != nil {
			return nil, fmt.Errorf("insert blueprint session: %w", err)
		}

		for j := range bs.Exercises {
			ex := &bs.Exercises[j]
			ex.BlueprintSessionID = bs.ID
			ex.Position = j
			ex.SetsCount = normalizeSetsCount(ex.SetsCount)
			if err = tx.QueryRow(ctx, `
				INSERT INTO blueprint_exercise (blueprint_session_id, name, sets_count, position)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`, ex.BlueprintSessionID, ex.Name, ex.SetsCount, ex.Position).Scan(&ex.ID); err != nil {
				return nil, fmt.Errorf("insert exercise: %w", err)
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.Int("program.id", program.ID))
	return &program, nil
}

// ListPrograms returns all programs with their sessions and exercises.
func (r *Repo) ListPrograms(ctx context.Context) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listprograms")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, bs.id, bs.name, bs.position, be.id, be.name, be.sets_count, be.position
		FROM program p
		LEFT JOIN blueprint_session bs ON bs.program_id = p.id
		LEFT JOIN blueprint_exercise be ON be.blueprint_session_id = bs.id
		ORDER BY p.id, bs.position, bs.id, be.position, be.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []Program
	for rows.Next() {
		var (
			programID                     int
			programName                   string
			bsID, bsPosition              *int
			bsName                        *string
			exID, exSetsCount, exPosition *int
			exName                        *string
		)
		if err := rows.Scan(
			&programID, &programName,
			&bsID, &bsName, &bsPosition,
			&exID, &exName, &exSetsCount, &exPosition,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if len(programs) == 0 || programs[len(programs)-1].ID != programID {
			programs = append(programs, Program{ID: programID, Name: programName})
		}
		p := &programs[len(programs)-1]
		if bsID == nil {
			continue
		}
		if len(p.Sessions) == 0 || p.Sessions[len(p.Sessions)-1].ID != *bsID {
			p.Sessions = append(p.Sessions, BlueprintSession{
				ID:        *bsID,
				ProgramID: programID,
				Name:      *bsName,
				Position:  *bsPosition,
			})
		}
		if exID == nil {
			continue
		}
		bs := &p.Sessions[len(p.Sessions)-1]
		bs.Exercises = append(bs.Exercises, Exercise{
			ID:                 *exID,
			BlueprintSessionID: *bsID,
			Name:               *exName,
			SetsCount:          *exSetsCount,
			Position:           *exPosition,
		})
	}

	return programs, rows.Err()
}

func (r *Repo) DeleteProgram(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.deleteprogram")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM program WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}
	return nil
}

// ExercisesForBlueprint returns the exercises of a blueprint session in
// their defined order.
func (r *Repo) ExercisesForBlueprint(ctx context.Context, blueprintSessionID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.exercises")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("blueprint_session.id", blueprintSessionID))

	rows, err := r.db.Query(ctx, `
		SELECT id, blueprint_session_id, name, sets_count, position
		FROM blueprint_exercise
		WHERE blueprint_session_id = $1
		ORDER BY position, id
	`, blueprintSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var ex Exercise
		if err := rows.Scan(&ex.ID, &ex.BlueprintSessionID, &ex.Name, &ex.SetsCount, &ex.Position); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		ex.SetsCount = normalizeSetsCount(ex.SetsCount)
		exercises = append(exercises, ex)
	}

	return exercises, rows.Err()
}

func (r *Repo) CreateSession(ctx context.Context, blueprintSessionID, userID int, start time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.createsession")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session := Session{
		BlueprintSessionID: blueprintSessionID,
		UserID:             userID,
		StartTime:          start,
	}
	if err := r.db.QueryRow(ctx, `
		INSERT INTO training_session (blueprint_session_id, user_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, blueprintSessionID, userID, start).Scan(&session.ID); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("blueprint session %d: %w", blueprintSessionID, ErrProgramNotFound)
		}
		return nil, fmt.Errorf("insert training session: %w", err)
	}

	span.SetAttributes(attribute.Int("training_session.id", session.ID))
	return &session, nil
}

func (r *Repo) GetSession(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getsession")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("id", id))

	var s Session
	err = r.db.QueryRow(ctx, `
		SELECT id, blueprint_session_id, user_id, start_time, end_time
		FROM training_session WHERE id = $1
	`, id).Scan(&s.ID, &s.BlueprintSessionID, &s.UserID, &s.StartTime, &s.EndTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) FinishSession(ctx context.Context, id int, end time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.finishsession")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `UPDATE training_session SET end_time = $1 WHERE id = $2`, end, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// AddSets stores the sets of one exercise atomically.
func (r *Repo) AddSets(ctx context.Context, sets []Set) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.addsets")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("sets", len(sets)))

	if len(sets) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range sets {
		batch.Queue(`
			INSERT INTO training_set (training_session_id, exercise_id, set_index, reps, weight)
			VALUES ($1, $2, $3, $4, $5)
		`, s.TrainingSessionID, s.ExerciseID, s.Ordinal, s.Reps, s.Weight)
	}

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if pkg.IsUniqueViolationError(err) {
		return fmt.Errorf("%w: %w", ErrSetsStored, err)
	}
	return err
}

// PreviousSets returns the sets of the given exercise from the most recent
// session before beforeSessionID, keyed by ordinal.
func (r *Repo) PreviousSets(ctx context.Context, exerciseID, beforeSessionID int) (_ map[int]SetValues, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.previoussets")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	rows, err := r.db.Query(ctx, `
		SELECT set_index, reps, weight
		FROM training_set
		WHERE exercise_id = $1 AND training_session_id = (
			SELECT MAX(training_session_id) FROM training_set
			WHERE exercise_id = $1 AND training_session_id < $2
		)
		ORDER BY set_index
	`, exerciseID, beforeSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	previous := map[int]SetValues{}
	for rows.Next() {
		var (
			ordinal int
			v       SetValues
		)
		if err := rows.Scan(&ordinal, &v.Reps, &v.Weight); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		previous[ordinal] = v
	}

	return previous, rows.Err()
}

func (r *Repo) ProgramOfBlueprint(ctx context.Context, blueprintSessionID int) (programID, sessionsCount int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.programofblueprint")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		SELECT bs.program_id, (SELECT COUNT(*) FROM blueprint_session WHERE program_id = bs.program_id)
		FROM blueprint_session bs WHERE bs.id = $1
	`, blueprintSessionID).Scan(&programID, &sessionsCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrProgramNotFound
	}
	return programID, sessionsCount, err
}

// CountCompletedBlueprints counts the distinct blueprint sessions of a
// program the user completed with a session started in [from, to).
func (r *Repo) CountCompletedBlueprints(ctx context.Context, programID, userID int, from, to time.Time) (count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.countcompleted")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT ts.blueprint_session_id)
		FROM training_session ts
		JOIN blueprint_session bs ON bs.id = ts.blueprint_session_id
		WHERE bs.program_id = $1 AND ts.user_id = $2
			AND ts.end_time IS NOT NULL
			AND ts.start_time >= $3 AND ts.start_time < $4
	`, programID, userID, from, to).Scan(&count)
	return count, err
}

// CompletedSessions returns the user's finished sessions started in [from, to).
func (r *Repo) CompletedSessions(ctx context.Context, userID int, from, to time.Time) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.completedsessions")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, blueprint_session_id, user_id, start_time, end_time
		FROM training_session
		WHERE user_id = $1 AND end_time IS NOT NULL
			AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.BlueprintSessionID, &s.UserID, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
