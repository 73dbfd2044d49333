package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/backend/internal/application/dispatch"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Handlers serves the authentication and user requests
type Handlers struct {
	users  identity.UserRepository
	hasher identity.PasswordHasher
	tokens identity.TokenIssuer
	logger *zap.Logger
}

// NewHandlers creates the identity handlers
func NewHandlers(
	users identity.UserRepository,
	hasher identity.PasswordHasher,
	tokens identity.TokenIssuer,
	log *zap.Logger,
) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: log.Named("identity"),
	}
}

// RegisterWith binds every identity request to d
func (h *Handlers) RegisterWith(d *dispatch.Dispatcher) error {
	return errors.Join(
		dispatch.Register(d, h.Register, dispatch.StructRules[RegisterCommand]{}),
		dispatch.Register(d, h.Login, dispatch.StructRules[LoginQuery]{}),
		dispatch.Register(d, h.List),
		dispatch.Register(d, h.GetByID, dispatch.StructRules[GetUserByIDQuery]{}),
		dispatch.Register(d, h.GetSummary, dispatch.StructRules[GetUserSummaryQuery]{}),
		dispatch.Register(d, h.Add, dispatch.StructRules[AddUserCommand]{}),
		dispatch.Register(d, h.Update, dispatch.StructRules[UpdateUserCommand]{}),
		dispatch.Register(d, h.Delete, dispatch.StructRules[DeleteUserCommand]{}),
	)
}

// List returns every user
func (h *Handlers) List(ctx context.Context, _ ListUsersQuery) (shared.Outcome[[]UserResponse], error) {
	all, err := h.users.GetAll(ctx)
	if err != nil {
		return shared.Outcome[[]UserResponse]{}, err
	}
	return shared.Map(all, ToUserResponses), nil
}

// GetByID returns one user
func (h *Handlers) GetByID(ctx context.Context, q GetUserByIDQuery) (shared.Outcome[UserResponse], error) {
	found, err := h.users.GetByID(ctx, q.ID)
	if err != nil {
		return shared.Outcome[UserResponse]{}, err
	}
	return shared.Map(found, ToUserResponse), nil
}

// GetSummary returns the public profile of a user
func (h *Handlers) GetSummary(ctx context.Context, q GetUserSummaryQuery) (shared.Outcome[UserSummaryResponse], error) {
	found, err := h.users.GetByID(ctx, q.ID)
	if err != nil {
		return shared.Outcome[UserSummaryResponse]{}, err
	}
	return shared.Map(found, toSummary), nil
}

// Add creates a user with the given role
func (h *Handlers) Add(ctx context.Context, c AddUserCommand) (shared.Outcome[UserResponse], error) {
	role := identity.RoleUser
	if c.Role != "" {
		parsed, err := identity.ParseRole(c.Role)
		if err != nil {
			return shared.Fail[UserResponse](shared.NewValidationError("role", "role must be User, Manager or Admin")), nil
		}
		role = parsed
	}

	email, err := identity.NormalizeEmail(c.Email)
	if err != nil {
		return shared.Fail[UserResponse](shared.AsError(err)), nil
	}
	available, err := h.emailAvailable(ctx, email, 0)
	if err != nil || available.IsFailed() {
		return shared.Recast[UserResponse](available), err
	}

	user, err := h.newUser(c.FirstName, c.LastName, email, c.Password, role)
	if err != nil {
		return failOrFault[UserResponse](err)
	}

	added, err := h.users.Add(ctx, user)
	if err != nil {
		return shared.Outcome[UserResponse]{}, err
	}
	if added.IsOk() {
		logger.WithLogger(ctx, h.logger).Info("User added",
			zap.Int64("user_id", added.Value().ID),
			zap.String("role", role.String()),
		)
	}
	return shared.Map(added, ToUserResponse), nil
}

// Update replaces a user's profile and role, and the password when one is given
func (h *Handlers) Update(ctx context.Context, c UpdateUserCommand) (shared.Outcome[UserResponse], error) {
	role, err := identity.ParseRole(c.Role)
	if err != nil {
		return shared.Fail[UserResponse](shared.NewValidationError("role", "role must be User, Manager or Admin")), nil
	}

	found, err := h.users.GetByID(ctx, c.ID)
	if err != nil || found.IsFailed() {
		return shared.Recast[UserResponse](found), err
	}
	user := found.Value()

	if err := user.Update(c.FirstName, c.LastName, c.Email, role); err != nil {
		return shared.Fail[UserResponse](shared.AsError(err)), nil
	}
	available, err := h.emailAvailable(ctx, user.Email, user.ID)
	if err != nil || available.IsFailed() {
		return shared.Recast[UserResponse](available), err
	}

	if c.Password != "" {
		hash, err := h.hasher.Hash(c.Password)
		if err != nil {
			return shared.Outcome[UserResponse]{}, fmt.Errorf("hash password: %w", err)
		}
		if err := user.ChangePasswordHash(hash); err != nil {
			return shared.Fail[UserResponse](shared.AsError(err)), nil
		}
	}

	updated, err := h.users.Update(ctx, user)
	if err != nil {
		return shared.Outcome[UserResponse]{}, err
	}
	return shared.Map(updated, ToUserResponse), nil
}

// Delete removes a user
func (h *Handlers) Delete(ctx context.Context, c DeleteUserCommand) (shared.Outcome[shared.Unit], error) {
	removed, err := h.users.Remove(ctx, c.ID)
	if err == nil && removed.IsOk() {
		logger.WithLogger(ctx, h.logger).Info("User deleted", zap.Int64("user_id", c.ID))
	}
	return removed, err
}

// emailAvailable fails with a Conflict when email belongs to a user other than
// ownerID. Lookup failures other than NotFound pass through.
func (h *Handlers) emailAvailable(ctx context.Context, email string, ownerID int64) (shared.Outcome[shared.Unit], error) {
	existing, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		return shared.Outcome[shared.Unit]{}, err
	}
	if existing.IsOk() {
		if existing.Value().ID == ownerID {
			return shared.OkUnit(), nil
		}
		return shared.Fail[shared.Unit](ErrEmailInUse()), nil
	}
	if existing.HasKind(shared.KindNotFound) {
		return shared.OkUnit(), nil
	}
	return shared.Recast[shared.Unit](existing), nil
}

// failOrFault reports classified errors as a failed outcome and anything else
// as a fault for the dispatcher
func failOrFault[T any](err error) (shared.Outcome[T], error) {
	var classified *shared.Error
	if errors.As(err, &classified) {
		return shared.Fail[T](classified), nil
	}
	return shared.Outcome[T]{}, err
}

func (h *Handlers) newUser(firstName, lastName, email, password string, role identity.Role) (*identity.User, error) {
	if password == "" {
		return nil, shared.NewValidationError("password", "password cannot be empty")
	}
	hash, err := h.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return identity.NewUser(firstName, lastName, email, hash, role)
}
