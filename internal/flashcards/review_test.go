package flashcards

import (
	"testing"
	"time"
)

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		correct    bool
		difficulty string
		want       int
	}{
		{true, Easy, 3},
		{true, Medium, 2},
		{true, Hard, 1},
		{true, "", 1},
		{false, Easy, 1},
		{false, Medium, 1},
		{false, Hard, 1},
	}
	for _, tt := range tests {
		if got := IntervalDays(tt.correct, tt.difficulty); got != tt.want {
			t.Errorf("IntervalDays(%v, %q) = %d, want %d", tt.correct, tt.difficulty, got, tt.want)
		}
	}
}

func TestNextReviewIsCivilDate(t *testing.T) {
	now := time.Date(2025, 1, 15, 23, 59, 0, 0, time.UTC)
	got := NextReview(true, Easy, now)
	want := time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextReview = %v, want %v", got, want)
	}
}

func TestIsDue_NeverScheduled(t *testing.T) {
	c := &Card{}
	if !c.IsDue(time.Now()) {
		t.Error("expected unscheduled card to be due")
	}
	if c.Status(time.Now()) != ReviewNew {
		t.Errorf("Status = %q, want new", c.Status(time.Now()))
	}
}

func TestIsDue_BeforeDate(t *testing.T) {
	now := time.Date(2025, 1, 16, 23, 0, 0, 0, time.UTC)
	c := &Card{NextReview: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)}
	if c.IsDue(now) {
		t.Error("expected not due the day before")
	}
	if got := c.DaysUntilReview(now); got != 1 {
		t.Errorf("DaysUntilReview = %d, want 1", got)
	}
	if c.Status(now) != ReviewNotDue {
		t.Errorf("Status = %q, want not_due", c.Status(now))
	}
}

func TestIsDue_OnDate(t *testing.T) {
	now := time.Date(2025, 1, 17, 0, 1, 0, 0, time.UTC)
	c := &Card{NextReview: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)}
	if !c.IsDue(now) {
		t.Error("expected due on the review date")
	}
	if c.Status(now) != ReviewDue {
		t.Errorf("Status = %q, want due", c.Status(now))
	}
}

func TestOverdueDays(t *testing.T) {
	now := time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)
	c := &Card{NextReview: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)}
	if got := c.OverdueDays(now); got != 3 {
		t.Errorf("OverdueDays = %d, want 3", got)
	}
	if c.Status(now) != ReviewOverdue {
		t.Errorf("Status = %q, want overdue", c.Status(now))
	}
	if got := c.DaysUntilReview(now); got != 0 {
		t.Errorf("DaysUntilReview = %d, want 0", got)
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{3, 5, 60},
		{2, 3, 67},
		{1, 8, 13},
		{4, 4, 100},
	}
	for _, tt := range tests {
		c := &Card{CorrectCount: tt.correct, TotalAttempts: tt.total}
		if got := c.Accuracy(); got != tt.want {
			t.Errorf("Accuracy(%d/%d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
