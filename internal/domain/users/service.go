package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petmate/internal/platform/logger"
	"petmate/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Mailer envía el código de reseteo. La implementación real es externa.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, code string, expiresAt time.Time) error
}

type Deps struct {
	Repo     Repository
	Resets   ResetRepository
	Tokens   auth.TokenIssuer
	Mailer   Mailer
	Log      logger.Logger
	ResetTTL time.Duration
}

type Service struct {
	repo     Repository
	resets   ResetRepository
	tokens   auth.TokenIssuer
	mailer   Mailer
	log      logger.Logger
	resetTTL time.Duration

	hashCost int
	now      func() time.Time
}

func NewService(d Deps) *Service {
	ttl := d.ResetTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	log := d.Log
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:     d.Repo,
		resets:   d.Resets,
		tokens:   d.Tokens,
		mailer:   d.Mailer,
		log:      log.With(map[string]any{"module": "users"}),
		resetTTL: ttl,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Session es lo que devuelven register/login.
type Session struct {
	User  User
	Token auth.Token
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	if errs := ValidateRegister(in); errs.HasErrors() {
		return Session{}, errs.AsError()
	}

	email := normalizeEmail(in.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Session{}, authErr(CodeEmailInUse, ErrEmailTaken)
	} else if !errors.Is(err, ErrNotFound) {
		return Session{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Session{}, authErr(CodeWeakPassword, err)
		}
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := User{
		ID:               uuid.NewString(),
		Email:            email,
		Name:             strings.TrimSpace(in.Name),
		Type:             in.UserType,
		PasswordHash:     hash,
		ProfileCompleted: false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// carrera entre dos registros con el mismo email
		if errors.Is(err, ErrEmailTaken) {
			return Session{}, authErr(CodeEmailInUse, err)
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	tok, err := s.tokens.Issue(ctx, u.ID, u.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("user registered", map[string]any{"user_id": u.ID, "user_type": string(u.Type)})
	return Session{User: u, Token: tok}, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	if errs := ValidateLogin(in); errs.HasErrors() {
		return Session{}, emailError(errs)
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, authErr(CodeUserNotFound, err)
		}
		return Session{}, fmt.Errorf("lookup email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)); err != nil {
		return Session{}, authErr(CodeWrongPassword, err)
	}

	tok, err := s.tokens.Issue(ctx, u.ID, u.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{User: u, Token: tok}, nil
}

// ResetPassword crea un código de un solo uso y lo manda por email.
// El ack es simplemente err == nil.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	if errs := ValidateResetEmail(email); errs.HasErrors() {
		return emailError(errs)
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return authErr(CodeUserNotFound, err)
		}
		return fmt.Errorf("lookup email: %w", err)
	}

	now := s.now()
	reset := PasswordReset{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return fmt.Errorf("store reset: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, u.Email, u.Name, reset.Token, reset.ExpiresAt); err != nil {
			return fmt.Errorf("send reset email: %w", err)
		}
	}
	return nil
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, in ConfirmResetInput) error {
	if errs := ValidateConfirmReset(in); errs.HasErrors() {
		return errs.AsError()
	}

	reset, err := s.resets.Get(ctx, strings.TrimSpace(in.Code))
	if err != nil {
		return authErr(CodeInvalidCode, ErrResetInvalid)
	}
	now := s.now()
	if !reset.Usable(now) {
		return authErr(CodeInvalidCode, ErrResetInvalid)
	}

	u, err := s.repo.GetByID(ctx, reset.UserID)
	if err != nil {
		return authErr(CodeInvalidCode, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return authErr(CodeWeakPassword, err)
	}

	// Primero se reclama el código: de dos confirmaciones concurrentes solo una pasa.
	if err := s.resets.MarkUsed(ctx, reset.Token, now); err != nil {
		if errors.Is(err, ErrResetInvalid) {
			return authErr(CodeInvalidCode, err)
		}
		return fmt.Errorf("consume reset: %w", err)
	}

	u.PasswordHash = hash
	u.UpdatedAt = now
	if err := s.repo.Update(ctx, u); err != nil {
		if rerr := s.resets.Release(ctx, reset.Token); rerr != nil {
			s.log.Error("release reset code failed", map[string]any{"user_id": u.ID, "err": rerr})
		}
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("password reset", map[string]any{"user_id": u.ID})
	return nil
}

// SignOut revoca el token de la sesión actual.
func (s *Service) SignOut(ctx context.Context, claims auth.Claims) error {
	if strings.TrimSpace(claims.UserID) == "" {
		return ErrInvalidInput
	}
	return s.tokens.Revoke(ctx, claims)
}

func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID)
}

// MarkProfileCompleted es idempotente. Lo llama pets al crear la primera mascota.
func (s *Service) MarkProfileCompleted(ctx context.Context, userID string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.ProfileCompleted {
		return nil
	}
	u.ProfileCompleted = true
	u.UpdatedAt = s.now()
	return s.repo.Update(ctx, u)
}

// Contact expone nombre y email para mostrar en la lista de matches.
func (s *Service) Contact(ctx context.Context, userID string) (name, email string, err error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return u.Name, u.Email, nil
}
