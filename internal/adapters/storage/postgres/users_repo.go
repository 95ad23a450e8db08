package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"petmate/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, name, user_type,
			password_hash, profile_completed,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		u.ID,
		u.Email,
		u.Name,
		string(u.Type),
		u.PasswordHash,
		u.ProfileCompleted,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			email = $2,
			name = $3,
			user_type = $4,
			password_hash = $5,
			profile_completed = $6,
			updated_at = $7
		WHERE id = $1
	`,
		u.ID,
		u.Email,
		u.Name,
		string(u.Type),
		u.PasswordHash,
		u.ProfileCompleted,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrEmailTaken
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

const userColumns = `id, email, name, user_type, password_hash, profile_completed, created_at, updated_at`

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (users.User, error) {
	var u users.User
	var userType string
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&userType,
		&u.PasswordHash,
		&u.ProfileCompleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	u.Type = users.UserType(userType)
	return u, nil
}

type ResetsRepo struct {
	db *sql.DB
}

func NewResetsRepo(db *sql.DB) *ResetsRepo {
	return &ResetsRepo{db: db}
}

func (r *ResetsRepo) Create(ctx context.Context, p users.PasswordReset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, user_id, created_at, expires_at)
		VALUES ($1,$2,$3,$4)
	`, p.Token, p.UserID, p.CreatedAt, p.ExpiresAt)
	return err
}

func (r *ResetsRepo) Get(ctx context.Context, token string) (users.PasswordReset, error) {
	var p users.PasswordReset
	var used sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT token, user_id, created_at, expires_at, used_at
		FROM password_resets
		WHERE token = $1
	`, token).Scan(&p.Token, &p.UserID, &p.CreatedAt, &p.ExpiresAt, &used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.PasswordReset{}, users.ErrResetInvalid
		}
		return users.PasswordReset{}, err
	}
	if used.Valid {
		t := used.Time
		p.UsedAt = &t
	}
	return p, nil
}

// MarkUsed consume el código una sola vez: el WHERE used_at IS NULL evita la doble carrera.
func (r *ResetsRepo) MarkUsed(ctx context.Context, token string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE password_resets SET used_at = $2
		WHERE token = $1 AND used_at IS NULL
	`, token, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrResetInvalid
	}
	return nil
}

func (r *ResetsRepo) Release(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE password_resets SET used_at = NULL WHERE token = $1`, token)
	return err
}

// TokenDenylist comparte las revocaciones entre réplicas.
type TokenDenylist struct {
	db  *sql.DB
	now func() time.Time
}

func NewTokenDenylist(db *sql.DB) *TokenDenylist {
	return &TokenDenylist{db: db, now: time.Now}
}

func (d *TokenDenylist) Add(ctx context.Context, tokenID string, until time.Time) error {
	if _, err := d.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at <= $1`, d.now(),
	); err != nil {
		return err
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (token_id, expires_at) VALUES ($1,$2)
		ON CONFLICT (token_id) DO UPDATE SET expires_at = EXCLUDED.expires_at
	`, tokenID, until)
	return err
}

func (d *TokenDenylist) Contains(ctx context.Context, tokenID string) (bool, error) {
	var found int
	err := d.db.QueryRowContext(ctx, `
		SELECT 1 FROM revoked_tokens WHERE token_id = $1 AND expires_at > $2
	`, tokenID, d.now()).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
