package flashcards

import (
	"math"
	"time"
)

// Card difficulties.
const (
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
)

// reviewDays is the interval after a correct answer, keyed by difficulty.
var reviewDays = map[string]int{
	Easy:   3,
	Medium: 2,
	Hard:   1,
}

// missDays is the interval after an incorrect answer.
const missDays = 1

// IntervalDays returns how many days until the next review.
func IntervalDays(correct bool, difficulty string) int {
	if !correct {
		return missDays
	}
	if d, ok := reviewDays[difficulty]; ok {
		return d
	}
	return missDays
}

// NextReview returns the review date after answering on now.
func NextReview(correct bool, difficulty string, now time.Time) time.Time {
	return Day(now).AddDate(0, 0, IntervalDays(correct, difficulty))
}

// Day truncates t to midnight in its own location. Review dates are civil
// dates; the time of day is never significant.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNew     ReviewStatus = "new"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
	ReviewNotDue  ReviewStatus = "not_due"
)

// IsDue returns true if the card has never been scheduled or its review date
// is today or earlier.
func (c *Card) IsDue(now time.Time) bool {
	if c.NextReview.IsZero() {
		return true
	}
	return !Day(now).Before(Day(c.NextReview))
}

// OverdueDays returns how many whole days past due the card is.
func (c *Card) OverdueDays(now time.Time) int {
	if c.NextReview.IsZero() || !c.IsDue(now) {
		return 0
	}
	return int(Day(now).Sub(Day(c.NextReview)).Hours() / 24)
}

// DaysUntilReview returns the number of days until the next review, or 0 if
// already due.
func (c *Card) DaysUntilReview(now time.Time) int {
	if c.IsDue(now) {
		return 0
	}
	return int(Day(c.NextReview).Sub(Day(now)).Hours() / 24)
}

// Status returns the review status for UI display.
func (c *Card) Status(now time.Time) ReviewStatus {
	switch {
	case c.NextReview.IsZero():
		return ReviewNew
	case c.OverdueDays(now) > 0:
		return ReviewOverdue
	case c.IsDue(now):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// Accuracy returns the rounded percentage of correct attempts.
func (c *Card) Accuracy() int {
	if c.TotalAttempts == 0 {
		return 0
	}
	return int(math.Round(float64(c.CorrectCount) / float64(c.TotalAttempts) * 100))
}
