package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/levelup/internal/telemetry/tracing"

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

const userColumns = `id, name, xp, level, weight, height, birth_date`

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if strings.TrimSpace(user.Name) == "" {
		return nil, errors.New("user name empty")
	}
	if user.Level < 1 {
		user.Level = 1
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO app_user (name, xp, level, weight, height, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		user.Name, user.XP, user.Level, user.Weight, user.Height, user.BirthDate,
	).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("id", id))

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE id = $1`, id)
	return scanUser(row)
}

// GetLatest returns the most recently created user.
func (r *Repo) GetLatest(ctx context.Context) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getlatest")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user ORDER BY id DESC LIMIT 1`)
	return scanUser(row)
}

// EnsureDefault returns the latest user, creating one with the given name
// when the installation has none yet.
func (r *Repo) EnsureDefault(ctx context.Context, name string) (*User, error) {
	user, err := r.GetLatest(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	return r.Add(ctx, User{Name: name, Level: 1})
}

// UpdateProfile updates name and body measurements, progress is untouched.
func (r *Repo) UpdateProfile(ctx context.Context, user User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateprofile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		UPDATE app_user SET name = $1, weight = $2, height = $3, birth_date = $4
		WHERE id = $5
	`, user.Name, user.Weight, user.Height, user.BirthDate, user.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) UpdateWeight(ctx context.Context, id int, weight float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateweight")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `UPDATE app_user SET weight = $1 WHERE id = $2`, weight, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) GetProgress(ctx context.Context, id int) (xp int, level int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getprogress")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `SELECT xp, level FROM app_user WHERE id = $1`, id).Scan(&xp, &level)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrUserNotFound
	}
	return xp, level, err
}

func (r *Repo) SetProgress(ctx context.Context, id int, xp int, level int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setprogress")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `UPDATE app_user SET xp = $1, level = $2 WHERE id = $3`, xp, level, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.XP, &user.Level,
		&user.Weight, &user.Height, &user.BirthDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
