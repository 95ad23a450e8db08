package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"petmate/internal/domain/users"
)

type userRepo struct {
	mu      sync.RWMutex
	byID    map[string]users.User
	byEmail map[string]string
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:    make(map[string]users.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	email := strings.ToLower(u.Email)
	if _, taken := r.byEmail[email]; taken {
		return users.ErrEmailTaken
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[u.ID]
	if !exists {
		return users.ErrNotFound
	}
	oldEmail, newEmail := strings.ToLower(prev.Email), strings.ToLower(u.Email)
	if oldEmail != newEmail {
		if _, taken := r.byEmail[newEmail]; taken {
			return users.ErrEmailTaken
		}
		delete(r.byEmail, oldEmail)
		r.byEmail[newEmail] = u.ID
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}

type resetRepo struct {
	mu      sync.Mutex
	byToken map[string]users.PasswordReset
}

func NewPasswordResetRepo() users.ResetRepository {
	return &resetRepo{byToken: make(map[string]users.PasswordReset)}
}

func (r *resetRepo) Create(ctx context.Context, p users.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.Token == "" {
		return errors.New("reset token required")
	}
	r.byToken[p.Token] = p
	return nil
}

func (r *resetRepo) Get(ctx context.Context, token string) (users.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byToken[token]
	if !ok {
		return users.PasswordReset{}, users.ErrResetInvalid
	}
	return p, nil
}

func (r *resetRepo) MarkUsed(ctx context.Context, token string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byToken[token]
	if !ok {
		return users.ErrResetInvalid
	}
	if p.UsedAt != nil {
		return users.ErrResetInvalid
	}
	p.UsedAt = &at
	r.byToken[token] = p
	return nil
}

func (r *resetRepo) Release(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byToken[token]
	if !ok {
		return users.ErrResetInvalid
	}
	p.UsedAt = nil
	r.byToken[token] = p
	return nil
}
