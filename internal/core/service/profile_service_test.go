package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

func TestProfileService_Upsert_LazyCreateRequiresNames(t *testing.T) {
	store := newStubStore()
	seeker := store.seedUser(domain.RoleJobSeeker)
	svc := NewProfileService(profileRepo{store}, discardLogger)

	bio := "ten years of Go"
	if _, err := svc.Upsert(context.Background(), seeker.ID, ports.ProfileInput{Bio: &bio}); !errors.Is(err, domain.ErrProfileIncomplete) {
		t.Errorf("first write without names must fail, got %v", err)
	}

	first, last := "Ada", "Lovelace"
	profile, err := svc.Upsert(context.Background(), seeker.ID, ports.ProfileInput{
		FirstName: &first, LastName: &last, Bio: &bio,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.FirstName != "Ada" || profile.Bio != "ten years of Go" {
		t.Errorf("profile fields wrong: %+v", profile)
	}
}

func TestProfileService_Upsert_PartialUpdate(t *testing.T) {
	store := newStubStore()
	seeker := store.seedUser(domain.RoleJobSeeker)
	svc := NewProfileService(profileRepo{store}, discardLogger)

	first, last := "Ada", "Lovelace"
	if _, err := svc.Upsert(context.Background(), seeker.ID, ports.ProfileInput{FirstName: &first, LastName: &last}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	phone := "+123456"
	updated, err := svc.Upsert(context.Background(), seeker.ID, ports.ProfileInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Phone != "+123456" {
		t.Errorf("phone not updated: %q", updated.Phone)
	}
	if updated.FirstName != "Ada" || updated.LastName != "Lovelace" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestProfileService_Get_NotFound(t *testing.T) {
	store := newStubStore()
	seeker := store.seedUser(domain.RoleJobSeeker)
	svc := NewProfileService(profileRepo{store}, discardLogger)

	if _, err := svc.Get(context.Background(), seeker.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUserService_Update_RejectsUnknownRole(t *testing.T) {
	store := newStubStore()
	user := store.seedUser(domain.RoleJobSeeker)
	svc := NewUserService(store, discardLogger)

	bad := "superuser"
	if _, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Role: &bad}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	admin := domain.RoleAdmin
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Role: &admin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Errorf("role not updated: %q", updated.Role)
	}
}
