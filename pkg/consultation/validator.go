package consultation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/prescription"
)

const (
	DefaultAge          = 30
	DefaultMaxTextRunes = 4000
	maxAge              = 130
)

var (
	errInvalidAge   = errors.New("invalid age")
	errTextTooLong  = errors.New("text too long")
	errInvalidBlood = errors.New("invalid blood group")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

var bloodGroups = map[string]struct{}{
	"A+": {}, "A-": {}, "B+": {}, "B-": {}, "AB+": {}, "AB-": {}, "O+": {}, "O-": {},
}

type Validator struct {
	maxTextRunes int
}

func NewValidator(maxTextRunes int) *Validator {
	if maxTextRunes <= 0 {
		maxTextRunes = DefaultMaxTextRunes
	}
	return &Validator{maxTextRunes: maxTextRunes}
}

// Validate checks the request and returns the normalised patient. Empty text
// is valid and leads to a "need more info" outcome.
func (v *Validator) Validate(req models.ConsultationRequest) (prescription.Patient, error) {
	if v == nil {
		return prescription.Patient{}, ValidationError{reason: errors.New("validator not initialised")}
	}
	if n := utf8.RuneCountInString(req.Text); n > v.maxTextRunes {
		return prescription.Patient{}, ValidationError{reason: fmt.Errorf("%d characters exceeds %d: %w", n, v.maxTextRunes, errTextTooLong)}
	}

	details := req.PatientDetails
	age, err := ParseAge(details.Age)
	if err != nil {
		return prescription.Patient{}, err
	}

	blood := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(details.BloodGroup), " ", ""))
	if blood != "" {
		if _, ok := bloodGroups[blood]; !ok {
			return prescription.Patient{}, ValidationError{reason: fmt.Errorf("blood group %q: %w", details.BloodGroup, errInvalidBlood)}
		}
	}

	return prescription.Patient{
		Name:       strings.TrimSpace(details.Name),
		Age:        age,
		Gender:     normalizeGender(details.Gender),
		BloodGroup: blood,
		Language:   normalizeLanguage(details.Language),
	}, nil
}

// ParseAge accepts "34", "34 years" or "34y" in ASCII digits. Ages given in
// months resolve to 0. A blank age means an adult of DefaultAge.
func ParseAge(raw string) (int, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return DefaultAge, nil
	}
	end := strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' })
	digits, unit := raw, ""
	if end >= 0 {
		digits, unit = raw[:end], strings.TrimSpace(raw[end:])
	}
	age, err := strconv.Atoi(digits)
	if err != nil || age < 0 || age > maxAge {
		return 0, ValidationError{reason: fmt.Errorf("age %q: %w", raw, errInvalidAge)}
	}
	switch unit {
	case "", "y", "yr", "yrs", "year", "years", "years old", "saal", "sal", "वर्ष", "साल":
		return age, nil
	case "m", "mo", "month", "months", "months old", "mahine", "mahina", "महीने", "महीना":
		// infants are dosed as age 0
		return 0, nil
	default:
		return 0, ValidationError{reason: fmt.Errorf("age %q: %w", raw, errInvalidAge)}
	}
}

func normalizeGender(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "m", "male", "man", "purush":
		return "male"
	case "f", "female", "woman", "mahila":
		return "female"
	case "":
		return "unspecified"
	default:
		return "other"
	}
}

func normalizeLanguage(l string) string {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "hi", "hindi", "hi-in", "hinglish":
		return "hi"
	default:
		return "en"
	}
}
