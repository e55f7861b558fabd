package domain

import (
	"time"

	"github.com/google/uuid"
)

// Result is a finished quiz run as persisted by the result sink.
type Result struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	NamesPresented   []string  `json:"names_presented"`
	AnswersSubmitted []string  `json:"answers_submitted"`
	Score            int       `json:"score"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewResult creates a Result with a fresh ID and creation timestamp.
// The name and answer slices are copied. Returns an error if validation fails.
func NewResult(email string, presented, answers []string, score int, status Status) (*Result, error) {
	r := &Result{
		ID:               uuid.New(),
		Email:            email,
		NamesPresented:   append([]string{}, presented...),
		AnswersSubmitted: append([]string{}, answers...),
		Score:            score,
		Status:           status,
		CreatedAt:        time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks the invariants the result sink enforces: a non-blank email,
// present name and answer lists, a non-negative score and a known status.
func (r *Result) Validate() error {
	if r.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", nil)
	}

	if IsBlank(r.Email) {
		return NewValidationError("email", "cannot be empty", nil)
	}

	if r.NamesPresented == nil {
		return NewValidationError("namesPresented", "must be an array", nil)
	}

	if r.AnswersSubmitted == nil {
		return NewValidationError("answersSubmitted", "must be an array", nil)
	}

	if r.Score < 0 {
		return NewValidationError("score", "cannot be negative", nil)
	}

	if !r.Status.Valid() {
		return NewValidationError("status", "must be one of fail, good, better, excellent", ErrInvalidStatus)
	}

	return nil
}
