package service

import (
	"strings"
	"time"

	"finanzas-ui/database/model"
)

// ValidationError reports a field-level payload failure. Message holds a
// translation key resolved by the controller layer.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// MovementInput is a movement payload after validation: trimmed concept
// and parsed date.
type MovementInput struct {
	Concept string
	Amount  float64
	Date    time.Time
	Type    string
}

// movement dates arrive either as a plain day or as a full timestamp
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseMovementDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateMovement checks a movement payload and returns the normalized
// input. Validation runs for every role, before authorization's effect is
// applied. An unrecognized type is rejected rather than defaulted.
func ValidateMovement(concept string, amount float64, date string, movType string, now time.Time) (MovementInput, *ValidationError) {
	var in MovementInput

	concept = strings.TrimSpace(concept)
	if concept == "" {
		return in, &ValidationError{Field: "concept", Message: "validation.conceptRequired"}
	}
	if len([]rune(concept)) > 100 {
		return in, &ValidationError{Field: "concept", Message: "validation.conceptTooLong"}
	}

	if amount <= 0 {
		return in, &ValidationError{Field: "amount", Message: "validation.amountPositive"}
	}

	if date == "" {
		return in, &ValidationError{Field: "date", Message: "validation.dateRequired"}
	}
	parsed, ok := parseMovementDate(date)
	if !ok {
		return in, &ValidationError{Field: "date", Message: "validation.dateRequired"}
	}
	if parsed.After(now) {
		return in, &ValidationError{Field: "date", Message: "validation.dateInFuture"}
	}

	if movType != model.TypeIngreso && movType != model.TypeEgreso {
		return in, &ValidationError{Field: "type", Message: "validation.typeInvalid"}
	}

	in.Concept = concept
	in.Amount = amount
	in.Date = parsed
	in.Type = movType
	return in, nil
}
