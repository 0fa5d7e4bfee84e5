package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, created, err := env.users.GetOrCreate(ctx, "u1", "ana@example.com", "Ana Silva")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if !created {
		t.Fatal("first call should report created")
	}
	if !strings.Contains(first.Avatar, "ui-avatars.com") {
		t.Fatalf("expected generated avatar, got %q", first.Avatar)
	}
	if !strings.Contains(first.Avatar, "Ana+Silva") {
		t.Fatalf("avatar should carry the escaped name, got %q", first.Avatar)
	}

	second, created, err := env.users.GetOrCreate(ctx, "u1", "other@example.com", "Other")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if created {
		t.Fatal("second call should not report created")
	}
	if second.Email != "ana@example.com" || second.Name != "Ana Silva" {
		t.Fatalf("existing profile was overwritten: %+v", second)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.GetByID(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
