package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aalvaropc/shelf/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput maps validator failures onto an invalid_input OpError naming each field.
func validateInput(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Err: err}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidInput,
		Err:  fmt.Errorf("%s: %w", strings.Join(msgs, "; "), domain.ErrInvalidInput),
	}
}

func describeField(fe validator.FieldError) string {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", name, fe.Tag())
	}
}

// ParseQuantity converts a typed quantity into a non-negative integer.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &domain.OpError{
			Op:   "usecase.parse_quantity",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("quantity %q is not a whole number: %w", s, domain.ErrInvalidInput),
		}
	}
	if n < 0 {
		return 0, &domain.OpError{
			Op:   "usecase.parse_quantity",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("quantity must be >= 0: %w", domain.ErrInvalidInput),
		}
	}
	return n, nil
}
