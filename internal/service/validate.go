package service

import (
	"time"

	"listTracker/internal/models"
)

func validateTitle(title string) *BusinessError {
	if title == "" {
		return NewValidationError("title", "must not be empty")
	}
	if len(title) > models.MaxTitleLen {
		return NewValidationError("title", "must be at most 100 characters")
	}
	return nil
}

func validateDescription(description string) *BusinessError {
	if len(description) > models.MaxDescriptionLen {
		return NewValidationError("description", "must be at most 150 characters")
	}
	return nil
}

// validateDueDate allows a missing due date but rejects one in the past,
// both at creation and at update time.
func validateDueDate(dueDate *time.Time, now time.Time) *BusinessError {
	if dueDate == nil {
		return nil
	}
	if dueDate.Before(now) {
		return NewValidationError("dueDate", "must not be in the past")
	}
	return nil
}

func validateCommentText(text string) *BusinessError {
	if text == "" {
		return NewValidationError("text", "must not be empty")
	}
	if len(text) > models.MaxCommentLen {
		return NewValidationError("text", "must be at most 200 characters")
	}
	return nil
}

func validateTagLabel(label string) *BusinessError {
	if label == "" {
		return NewValidationError("label", "must not be empty")
	}
	if len(label) > models.MaxTagLabelLen {
		return NewValidationError("label", "must be at most 40 characters")
	}
	return nil
}
