package services

import (
	"testing"

	"github.com/openmelody/backend/pkg/apperr"
)

func TestVerifyOwner_OwnerAllowed(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	playlist := createTestPlaylist(t, db, "Morning Mix", owner.ID)

	svc := NewAccessService(db)
	if err := svc.VerifyOwner(playlist.ID, owner.ID); err != nil {
		t.Errorf("owner should pass ownership check, got %v", err)
	}
}

func TestVerifyOwner_NonOwnerForbidden(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	playlist := createTestPlaylist(t, db, "Morning Mix", owner.ID)

	svc := NewAccessService(db)
	err := svc.VerifyOwner(playlist.ID, other.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("non-owner should be forbidden, got %v", err)
	}
}

func TestVerifyOwner_MissingPlaylistNotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "someone")

	svc := NewAccessService(db)
	err := svc.VerifyOwner("playlist-missing", user.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing playlist should be not-found, got %v", err)
	}
}

func TestVerifyOwner_CollaboratorStillForbidden(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	collab := createTestUser(t, db, "collab")
	playlist := createTestPlaylist(t, db, "Morning Mix", owner.ID)
	grantCollaboration(t, db, playlist.ID, collab.ID)

	// A grant widens access, never ownership.
	svc := NewAccessService(db)
	err := svc.VerifyOwner(playlist.ID, collab.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("collaborator should fail ownership check, got %v", err)
	}
}

func TestVerifyAccess_OwnerAllowed(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	playlist := createTestPlaylist(t, db, "Morning Mix", owner.ID)

	svc := NewAccessService(db)
	if err := svc.VerifyAccess(playlist.ID, owner.ID); err != nil {
		t.Errorf("owner should pass access check, got %v", err)
	}
}

func TestVerifyAccess_CollaboratorAllowed(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	collab := createTestUser(t, db, "collab")
	playlist := createTestPlaylist(t, db, "Morning Mix", owner.ID)
	grantCollaboration(t, db, playlist.ID, collab.ID)

	svc := NewAccessService(db)
	if err := svc.VerifyAccess(playlist.ID, collab.ID); err != nil {
		t.Errorf("collaborator should pass access check, got %v", err)
	}
}

func TestVerifyAccess_StrangerForbidden(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")
	playlist := createTestPlaylist(t, db, "Morning Mix", owner.ID)

	svc := NewAccessService(db)
	err := svc.VerifyAccess(playlist.ID, stranger.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("stranger should be forbidden, got %v", err)
	}
}

func TestVerifyAccess_MissingPlaylistNeverForbidden(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "someone")

	// Even a stale grant row for the missing playlist must not turn the
	// not-found into a forbidden.
	grantCollaboration(t, db, "playlist-missing", user.ID)

	svc := NewAccessService(db)
	err := svc.VerifyAccess("playlist-missing", user.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing playlist should be not-found, got %v", err)
	}
}
