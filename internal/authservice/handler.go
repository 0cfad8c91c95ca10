package authservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bmwadforth/articlehub/internal/common"
)

var ErrAuthenticationFailure = errors.New("invalid username or password")

// NewAuthService wires the user store, token manager and an optional event producer. A nil producer
// disables user.created events.
func NewAuthService(db *sql.DB, tokens *TokenManager, mb common.MessageProducer) *AuthService {
	return &AuthService{
		m:      newUserModel(db),
		tokens: tokens,
		mb:     mb,
	}
}

// RegisterUser creates a user account and publishes a user.created event.
func (s *AuthService) RegisterUser(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
	}

	if err := u.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.m.insertUser(ctx, &u); err != nil {
		return nil, err
	}

	// The user row is already committed, so a failed publish only costs the welcome email.
	if err := s.publishUserCreated(ctx, &u); err != nil {
		slog.ErrorContext(ctx, "failed to publish user.created event",
			slog.Int("user_id", u.ID),
			slog.String("error", err.Error()))
	}

	return &u, nil
}

func (s *AuthService) publishUserCreated(ctx context.Context, u *User) error {
	if s.mb == nil {
		return nil
	}

	msg, err := json.Marshal(common.UserCreatedEvent{UserID: u.ID, Username: u.Username, Email: u.Email})
	if err != nil {
		return err
	}

	return s.mb.Publish(ctx, msg, common.UserCreatedKey, common.UserExchange)
}

// Login checks the credentials and issues a token for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Token, error) {
	v := common.NewValidator()
	validateCredentials(v, username, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return s.tokens.GenerateToken(Claims{UserID: user.ID, Username: user.Username})
}

// Authenticate resolves a bearer token to the claims it carries.
func (s *AuthService) Authenticate(token string) (*Claims, error) {
	return s.tokens.ParseToken(token)
}
