package services

import (
	"testing"

	"github.com/openmelody/backend/pkg/apperr"
)

func TestCollaborationAdd_GrantsAccess(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	collab := createTestUser(t, db, "collab")
	playlist := createTestPlaylist(t, db, "Mix", owner.ID)

	svc := NewCollaborationService(db)
	grantID, err := svc.Add(playlist.ID, collab.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if grantID == "" {
		t.Error("expected non-empty grant id")
	}

	access := NewAccessService(db)
	if err := access.VerifyAccess(playlist.ID, collab.ID); err != nil {
		t.Errorf("grantee should pass access check, got %v", err)
	}
}

func TestCollaborationAdd_MissingUserNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	playlist := createTestPlaylist(t, db, "Mix", owner.ID)

	svc := NewCollaborationService(db)
	_, err := svc.Add(playlist.ID, "user-missing")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for missing user, got %v", err)
	}
}

func TestCollaborationAdd_MissingPlaylistNotFound(t *testing.T) {
	db := newTestDB(t)
	collab := createTestUser(t, db, "collab")

	svc := NewCollaborationService(db)
	_, err := svc.Add("playlist-missing", collab.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for missing playlist, got %v", err)
	}
}

func TestCollaborationAdd_OwnerConflict(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	playlist := createTestPlaylist(t, db, "Mix", owner.ID)

	svc := NewCollaborationService(db)
	_, err := svc.Add(playlist.ID, owner.ID)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("granting the owner should conflict, got %v", err)
	}
}

func TestCollaborationAdd_DuplicateConflict(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	collab := createTestUser(t, db, "collab")
	playlist := createTestPlaylist(t, db, "Mix", owner.ID)

	svc := NewCollaborationService(db)
	if _, err := svc.Add(playlist.ID, collab.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.Add(playlist.ID, collab.ID)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate grant should conflict, got %v", err)
	}
}

func TestCollaborationRemove_RevokesAccess(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	collab := createTestUser(t, db, "collab")
	playlist := createTestPlaylist(t, db, "Mix", owner.ID)

	svc := NewCollaborationService(db)
	if _, err := svc.Add(playlist.ID, collab.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(playlist.ID, collab.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	access := NewAccessService(db)
	err := access.VerifyAccess(playlist.ID, collab.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("revoked grantee should be forbidden, got %v", err)
	}
}

func TestCollaborationRemove_MissingNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	collab := createTestUser(t, db, "collab")
	playlist := createTestPlaylist(t, db, "Mix", owner.ID)

	svc := NewCollaborationService(db)
	err := svc.Remove(playlist.ID, collab.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}
