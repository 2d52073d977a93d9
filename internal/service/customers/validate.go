package customers

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/acme/customer-service/internal/model"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{4}$`)

// validateCustomer checks the payload rules in a fixed order and
// surfaces the first violation only. It never touches the store.
func validateCustomer(req *model.CustomerRequest) error {
	if req == nil {
		return &ValidationError{Message: "Customer cannot be null"}
	}

	if err := validateName(req.FirstName, "First name"); err != nil {
		return err
	}
	if err := validateName(req.LastName, "Last name"); err != nil {
		return err
	}

	if strings.TrimSpace(req.Email) == "" {
		return &ValidationError{Message: "Email is required"}
	}
	if !strings.Contains(req.Email, "@") {
		return &ValidationError{Message: "Invalid email format"}
	}

	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return &ValidationError{Message: "The phone must be in the format XXX-XXXX or empty"}
	}

	if utf8.RuneCountInString(req.Address) > 100 {
		return &ValidationError{Message: "Address must be less than 100 characters"}
	}

	return nil
}

func validateName(value, label string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Message: label + " is required"}
	}
	if n := utf8.RuneCountInString(trimmed); n < 2 || n > 40 {
		return &ValidationError{Message: label + " must be between 2 and 40 characters"}
	}
	return nil
}
