package commands

import (
	"context"
	"log/slog"
	"time"

	"coworking-pos/internal/domain/operator"
	reqdto "coworking-pos/internal/handler/dto/request"
	"coworking-pos/internal/infra"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/pkg/jwt"
	"coworking-pos/internal/pkg/password"
	"coworking-pos/internal/usecase/queries"
	"coworking-pos/internal/usecase/shared"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	User        *queries.AuthorizedUserView
	AccessToken string
	ExpiresIn   time.Duration
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	user, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := operator.NewRole(user.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	accessToken, err := a.jwtService.GenerateToken(user.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, user.ID)
	})
	if err != nil {
		// last_login is bookkeeping only
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err.Error())
	}

	return &LoginResult{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials operator.Credentials) (*queries.AuthorizedUserView, error) {
	user, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same answer as a wrong password so emails cannot be enumerated
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := password.Verify(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, queries.ErrUserInactive
	}

	return user, nil
}
