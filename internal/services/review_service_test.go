package services

import (
	"errors"
	"testing"
)

func TestReviewRequiresContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := createUser(t, db, "alice", false)

	if _, err := svc.Create(user.ID, "   "); !errors.Is(err, ErrContentRequired) {
		t.Fatalf("err = %v, want ErrContentRequired", err)
	}
}

func TestReviewCreateAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	user := createUser(t, db, "alice", false)

	if _, err := svc.Create(user.ID, "quick turnaround"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(user.ID, "friendly staff"); err != nil {
		t.Fatalf("create: %v", err)
	}

	reviews, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("len(reviews) = %d, want 2", len(reviews))
	}
	if reviews[0].UserID != user.ID {
		t.Fatalf("user_id = %s", reviews[0].UserID)
	}
}
