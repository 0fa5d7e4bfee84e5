package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"rentify-backend-go/internal/kv"
	"rentify-backend-go/internal/models"
)

// defaultAvatarURL generates an initials avatar for accounts that
// never upload one, same service the web client expects.
func defaultAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&size=200"
}

type userService struct {
	store kv.Store
}

// NewUserService creates a UserService on top of the given store.
func NewUserService(store kv.Store) UserService {
	return &userService{store: store}
}

func (s *userService) GetOrCreate(ctx context.Context, uid, email, name string) (*models.User, bool, error) {
	user, err := getRecord[models.User](ctx, s.store, kv.UserKey(uid))
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, kv.ErrKeyNotFound) {
		return nil, false, fmt.Errorf("get user %q: %w", uid, err)
	}

	created := &models.User{
		ID:        uid,
		Email:     email,
		Name:      name,
		Avatar:    defaultAvatarURL(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := putRecord(ctx, s.store, kv.UserKey(uid), created); err != nil {
		return nil, false, fmt.Errorf("create user %q: %w", uid, err)
	}
	return created, true, nil
}

func (s *userService) GetByID(ctx context.Context, uid string) (*models.User, error) {
	user, err := getRecord[models.User](ctx, s.store, kv.UserKey(uid))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, uid)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", uid, err)
	}
	return user, nil
}
