package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"toolfacturer-backend/internal/domain"
	"toolfacturer-backend/internal/port"
)

type TokenIssuer interface {
	Issue(email string) (string, error)
}

type UserService struct {
	users  port.UserRepository
	tokens TokenIssuer
}

func NewUserService(users port.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

type UpsertResult struct {
	Result port.UpdateResult `json:"result"`
	Token  string            `json:"token"`
}

// Upsert writes the profile fields for email, creating the user when absent,
// and hands back a fresh token for that email. A password, if given, is
// stored as a bcrypt hash. Role cannot be set here.
func (s *UserService) Upsert(ctx context.Context, email string, fields domain.UserFields) (UpsertResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return UpsertResult{}, ErrInvalidEmail
	}
	if fields.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(fields.Password), bcrypt.DefaultCost)
		if err != nil {
			return UpsertResult{}, fmt.Errorf("hash password: %w", err)
		}
		fields.Password = string(hashed)
	}

	res, err := s.users.UpsertUser(ctx, email, fields)
	if err != nil {
		return UpsertResult{}, err
	}
	tok, err := s.tokens.Issue(email)
	if err != nil {
		return UpsertResult{}, err
	}
	return UpsertResult{Result: res, Token: tok}, nil
}

func (s *UserService) MakeAdmin(ctx context.Context, email string) (port.UpdateResult, error) {
	return s.users.SetRole(ctx, email, domain.RoleAdmin)
}

// IsAdmin reads the stored role on every call. Unknown users are not admins.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, port.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) Delete(ctx context.Context, id string) (port.DeleteResult, error) {
	return s.users.DeleteUser(ctx, id)
}
