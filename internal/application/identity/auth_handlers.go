package identity

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Register creates a User account and returns an access token for it
func (h *Handlers) Register(ctx context.Context, c RegisterCommand) (shared.Outcome[AuthenticationResponse], error) {
	email, err := identity.NormalizeEmail(c.Email)
	if err != nil {
		return shared.Fail[AuthenticationResponse](shared.AsError(err)), nil
	}

	available, err := h.emailAvailable(ctx, email, 0)
	if err != nil || available.IsFailed() {
		return shared.Recast[AuthenticationResponse](available), err
	}

	user, err := h.newUser(c.FirstName, c.LastName, email, c.Password, identity.RoleUser)
	if err != nil {
		return failOrFault[AuthenticationResponse](err)
	}

	added, err := h.users.Add(ctx, user)
	if err != nil || added.IsFailed() {
		return shared.Recast[AuthenticationResponse](added), err
	}

	token, err := h.tokens.Issue(added.Value())
	if err != nil {
		return shared.Outcome[AuthenticationResponse]{}, fmt.Errorf("issue token: %w", err)
	}

	logger.WithLogger(ctx, h.logger).Info("User registered", zap.Int64("user_id", added.Value().ID))
	return shared.Ok(toAuthentication(added.Value(), token)), nil
}

// Login verifies credentials and returns an access token
func (h *Handlers) Login(ctx context.Context, q LoginQuery) (shared.Outcome[AuthenticationResponse], error) {
	log := logger.WithLogger(ctx, h.logger)

	email, err := identity.NormalizeEmail(q.Email)
	if err != nil {
		return shared.Fail[AuthenticationResponse](shared.AsError(err)), nil
	}

	found, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		return shared.Outcome[AuthenticationResponse]{}, err
	}
	if found.HasKind(shared.KindNotFound) {
		log.Warn("Login attempt for unknown account")
		return shared.Fail[AuthenticationResponse](ErrAccountNotFound()), nil
	}
	if found.IsFailed() {
		return shared.Recast[AuthenticationResponse](found), nil
	}

	user := found.Value()
	if !h.hasher.Verify(user.PasswordHash, q.Password) {
		log.Warn("Login attempt with invalid password", zap.Int64("user_id", user.ID))
		return shared.Fail[AuthenticationResponse](ErrInvalidPassword()), nil
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return shared.Outcome[AuthenticationResponse]{}, fmt.Errorf("issue token: %w", err)
	}
	log.Info("User logged in", zap.Int64("user_id", user.ID))
	return shared.Ok(toAuthentication(user, token)), nil
}
