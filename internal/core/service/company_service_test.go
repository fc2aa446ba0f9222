package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

func newCompanyService(store *stubStore, files *stubFileStore) *CompanyService {
	return NewCompanyService(companyRepo{store}, files, discardLogger)
}

func TestCompanyService_Create_AddsOwnerMembership(t *testing.T) {
	store := newStubStore()
	employer := store.seedUser(domain.RoleEmployer)

	svc := newCompanyService(store, newStubFileStore())
	company, err := svc.Create(context.Background(), employer.ID, ports.CompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.members) != 1 {
		t.Fatalf("expected 1 membership row, got %d", len(store.members))
	}
	m := store.members[0]
	if m.UserID != employer.ID || m.CompanyID != company.ID || m.Role != domain.MemberRoleOwner {
		t.Errorf("owner membership wrong: %+v", m)
	}
}

func TestCompanyService_Directory_ActiveJobCountsAndDefaultLimit(t *testing.T) {
	store := newStubStore()
	for i := 0; i < 15; i++ {
		c := store.seedCompany(fmt.Sprintf("Company %02d", i))
		store.seedJob(c.ID, "Open", true)
		store.seedJob(c.ID, "Closed", false)
	}

	svc := newCompanyService(store, newStubFileStore())
	items, meta, err := svc.Directory(context.Background(), pagination.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != pagination.DirectoryLimit {
		t.Fatalf("expected directory page of %d, got %d", pagination.DirectoryLimit, len(items))
	}
	for _, item := range items {
		if item.ActiveJobs != 1 {
			t.Errorf("%s: expected 1 active job, got %d", item.Name, item.ActiveJobs)
		}
	}
	if meta.Total != 15 || meta.TotalPages != 2 {
		t.Errorf("meta wrong: total=%d totalPages=%d", meta.Total, meta.TotalPages)
	}
}

func TestCompanyService_Update_MembershipScoped(t *testing.T) {
	store := newStubStore()
	owner := store.seedUser(domain.RoleEmployer)
	outsider := store.seedUser(domain.RoleEmployer)
	company := store.seedCompany("Acme", owner.ID)

	svc := newCompanyService(store, newStubFileStore())
	desc := "We build rockets"

	if _, err := svc.Update(context.Background(), outsider.ID, company.ID, ports.CompanyInput{Description: &desc}); !errors.Is(err, domain.ErrNotCompanyMember) {
		t.Errorf("outsider: expected ErrNotCompanyMember, got %v", err)
	}

	updated, err := svc.Update(context.Background(), owner.ID, company.ID, ports.CompanyInput{Description: &desc})
	if err != nil {
		t.Fatalf("member update failed: %v", err)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Error("description not updated")
	}
	if updated.Name != "Acme" {
		t.Errorf("empty name must leave the existing one, got %q", updated.Name)
	}
}

func TestCompanyService_Update_UnknownCompany(t *testing.T) {
	store := newStubStore()
	user := store.seedUser(domain.RoleEmployer)
	svc := newCompanyService(store, newStubFileStore())

	_, err := svc.Update(context.Background(), user.ID, store.seedUser(domain.RoleEmployer).ID, ports.CompanyInput{Name: "X"})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Errorf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestCompanyService_UpdateLogo_DeletesPreviousObject(t *testing.T) {
	store := newStubStore()
	files := newStubFileStore()
	owner := store.seedUser(domain.RoleEmployer)
	company := store.seedCompany("Acme", owner.ID)
	oldLogo := "/uploads/logos/old.png"
	company.Logo = &oldLogo

	svc := newCompanyService(store, files)
	updated, err := svc.UpdateLogo(context.Background(), owner.ID, company.ID, "new.png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Logo == nil || *updated.Logo != "/uploads/logos/new.png" {
		t.Error("logo not updated")
	}
	if len(files.deleted) != 1 || files.deleted[0] != oldLogo {
		t.Errorf("previous logo not deleted: %v", files.deleted)
	}
}

func TestCompanyService_UpdateLogo_NonMemberStoresNothing(t *testing.T) {
	store := newStubStore()
	files := newStubFileStore()
	owner := store.seedUser(domain.RoleEmployer)
	outsider := store.seedUser(domain.RoleEmployer)
	company := store.seedCompany("Acme", owner.ID)

	svc := newCompanyService(store, files)
	_, err := svc.UpdateLogo(context.Background(), outsider.ID, company.ID, "evil.html", strings.NewReader("<script>alert(1)</script>"))
	if !errors.Is(err, domain.ErrNotCompanyMember) {
		t.Fatalf("expected ErrNotCompanyMember, got %v", err)
	}
	if len(files.objects) != 0 {
		t.Errorf("forbidden upload must not reach storage, found %d objects", len(files.objects))
	}
	if company.Logo != nil {
		t.Error("logo must stay unset after a forbidden upload")
	}
}

// failingUpdateCompanyRepo rejects every company update.
type failingUpdateCompanyRepo struct {
	companyRepo
}

func (r failingUpdateCompanyRepo) Update(context.Context, *domain.Company) error {
	return errStorage
}

func TestCompanyService_UpdateLogo_FailedUpdateRemovesStoredObject(t *testing.T) {
	store := newStubStore()
	files := newStubFileStore()
	owner := store.seedUser(domain.RoleEmployer)
	company := store.seedCompany("Acme", owner.ID)

	svc := NewCompanyService(failingUpdateCompanyRepo{companyRepo{store}}, files, discardLogger)
	_, err := svc.UpdateLogo(context.Background(), owner.ID, company.ID, "new.png", strings.NewReader("png"))
	if !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(files.objects) != 0 {
		t.Errorf("saved logo must be removed when the row update fails, found %d objects", len(files.objects))
	}
	if len(files.deleted) != 1 || files.deleted[0] != "/uploads/logos/new.png" {
		t.Errorf("expected the new object deleted, got %v", files.deleted)
	}
}

func TestCompanyService_UpdateLogo_FirstLogoDeletesNothing(t *testing.T) {
	store := newStubStore()
	files := newStubFileStore()
	owner := store.seedUser(domain.RoleEmployer)
	company := store.seedCompany("Acme", owner.ID)

	svc := newCompanyService(store, files)
	if _, err := svc.UpdateLogo(context.Background(), owner.ID, company.ID, "first.png", strings.NewReader("png")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files.deleted) != 0 {
		t.Errorf("nothing should be deleted on first logo upload: %v", files.deleted)
	}
}
