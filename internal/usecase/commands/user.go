package commands

import (
	"context"

	"market-client/internal/domain/user"
	"market-client/internal/infra/cache"
	"market-client/internal/usecase/queries"
)

const NameInvalidProfile = "invalid_profile"

//go:generate mockgen -source=user.go -destination=../../../tests/mock/commands/user.go -package=commandsmock

type UserCommands interface {
	UpdateDescription(ctx context.Context, description string) error
	AddContactInfo(ctx context.Context, contactType, value string) error
	RemoveContactInfo(ctx context.Context, id int64) error
}

type userUseCaseImpl struct {
	writer UserWriter
	store  *cache.Store
}

func NewUserUseCase(writer UserWriter, store *cache.Store) UserCommands {
	return &userUseCaseImpl{
		writer: writer,
		store:  store,
	}
}

func (u *userUseCaseImpl) UpdateDescription(ctx context.Context, description string) error {
	if err := user.ValidateDescription(description); err != nil {
		return invalid(err, NameInvalidProfile)
	}
	if err := u.writer.UpdateDescription(ctx, description); err != nil {
		return err
	}
	u.store.Invalidate(queries.MeKey())
	return nil
}

func (u *userUseCaseImpl) AddContactInfo(ctx context.Context, contactType, value string) error {
	c, err := user.NewContactInfo(contactType, value)
	if err != nil {
		return invalid(err, NameInvalidProfile)
	}
	if err := u.writer.AddContactInfo(ctx, c); err != nil {
		return err
	}
	u.store.InvalidatePrefix(queries.PathContactInfo)
	return nil
}

func (u *userUseCaseImpl) RemoveContactInfo(ctx context.Context, id int64) error {
	if err := u.writer.RemoveContactInfo(ctx, id); err != nil {
		return err
	}
	u.store.InvalidatePrefix(queries.PathContactInfo)
	return nil
}
