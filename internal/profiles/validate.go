package profiles

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[\d\-\s()]{10,}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// FieldError reports which input field failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// UpdateRequest is the raw profile patch before validation.
type UpdateRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Street    string
	City      string
	State     string
	ZipCode   string
}

// ValidateUpdate checks and normalizes a profile patch. Email is lowercased
// and state uppercased before storage so lookups and display stay consistent.
func ValidateUpdate(req UpdateRequest) (Update, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return Update{}, &FieldError{Field: "firstName", Message: "first name is required"}
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return Update{}, &FieldError{Field: "lastName", Message: "last name is required"}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return Update{}, &FieldError{Field: "email", Message: "a valid email is required"}
	}

	update := Update{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}

	if phone := strings.TrimSpace(req.Phone); phone != "" {
		if !phonePattern.MatchString(phone) {
			return Update{}, &FieldError{Field: "phone", Message: "phone number is not valid"}
		}
		update.Phone = &phone
	}

	street := strings.TrimSpace(req.Street)
	city := strings.TrimSpace(req.City)
	state := strings.ToUpper(strings.TrimSpace(req.State))
	zip := strings.TrimSpace(req.ZipCode)

	anyAddress := street != "" || city != "" || state != "" || zip != ""
	if anyAddress {
		if street == "" || city == "" || state == "" || zip == "" {
			return Update{}, &FieldError{Field: "address", Message: "address requires street, city, state and zipCode together"}
		}
		if !zipPattern.MatchString(zip) {
			return Update{}, &FieldError{Field: "zipCode", Message: "zip code is not valid"}
		}
		update.Address = &Address{
			Street:  street,
			City:    city,
			State:   state,
			ZipCode: zip,
		}
	}

	return update, nil
}
