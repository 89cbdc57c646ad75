package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
)

func testPollAnswers(userID string) []model.PollAnswer {
	return []model.PollAnswer{
		{UserID: userID, Question: "What are your financial goals?", Answer: "Pay off debt"},
		{UserID: userID, Question: "How do you currently manage your finances?", Answer: "Other (Please specify)", OtherText: "envelope method"},
	}
}

func TestSubmitPoll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "poll@example.com")

	if err := db.SubmitPoll(ctx, user.ID, testPollAnswers(user.ID)); err != nil {
		t.Fatalf("SubmitPoll() error = %v", err)
	}

	stored, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if !stored.HasCompletedPoll {
		t.Error("HasCompletedPoll = false after SubmitPoll")
	}
	if stored.PollCompletedAt == nil {
		t.Error("PollCompletedAt not set after SubmitPoll")
	}

	answers, err := db.ListPollAnswers(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListPollAnswers() error = %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("ListPollAnswers() returned %d answers, want 2", len(answers))
	}
	if answers[1].OtherText != "envelope method" {
		t.Errorf("OtherText = %q, want free-text override preserved", answers[1].OtherText)
	}
}

func TestSubmitPoll_Twice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "poll@example.com")

	if err := db.SubmitPoll(ctx, user.ID, testPollAnswers(user.ID)); err != nil {
		t.Fatalf("first SubmitPoll() error = %v", err)
	}

	err := db.SubmitPoll(ctx, user.ID, testPollAnswers(user.ID))
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second SubmitPoll() error = %v, want ErrConflict", err)
	}

	// The rejected resubmit must not append rows.
	answers, _ := db.ListPollAnswers(ctx, user.ID)
	if len(answers) != 2 {
		t.Errorf("ListPollAnswers() returned %d answers after rejected resubmit, want 2", len(answers))
	}
}

func TestSubmitPoll_MissingUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.SubmitPoll(ctx, "no-such-user", testPollAnswers("no-such-user"))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("SubmitPoll(missing) error = %v, want ErrNotFound", err)
	}

	answers, _ := db.ListPollAnswers(ctx, "no-such-user")
	if len(answers) != 0 {
		t.Errorf("ListPollAnswers() returned %d answers for missing user, want 0", len(answers))
	}
}
