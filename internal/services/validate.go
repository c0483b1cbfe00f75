package services

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/wellform/wellform/internal/models"
)

// questionCount is the number of questions on the form.
const questionCount = 16

var (
	// emailPattern is deliberately loose: something before the @, something
	// after it, and at least one dot in the domain.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// phonePattern applies after formatting characters are stripped:
	// optional +, nonzero first digit, at most 16 digits total.
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// validGenders is the fixed set the form offers; matched case-insensitively.
var validGenders = map[string]bool{
	"male":              true,
	"female":            true,
	"non-binary":        true,
	"prefer-not-to-say": true,
}

var allowedAnswers = map[string]bool{
	models.AnswerYes:       true,
	models.AnswerNo:        true,
	models.AnswerSometimes: true,
}

var personalValidator = newPersonalValidator()

func newPersonalValidator() *validator.Validate {
	v := validator.New()
	// Report errors under json field names so messages read "name is
	// required" rather than "Name is required".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "email_basic", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "phone_intl", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(phoneStrip.Replace(strings.TrimSpace(fl.Field().String())))
	})
	mustRegister(v, "age_range", func(fl validator.FieldLevel) bool {
		age, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
		return err == nil && age >= 1 && age <= 120
	})
	mustRegister(v, "gender_enum", func(fl validator.FieldLevel) bool {
		return validGenders[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidatePersonalDetails checks the personal section and returns every
// failing field's message. Failures are collected, not short-circuited, so
// the caller can report everything at once. An empty slice means valid.
func ValidatePersonalDetails(d *models.PersonalDetails) []string {
	if d == nil {
		d = &models.PersonalDetails{}
	}
	err := personalValidator.Struct(d)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, personalFieldMessage(fe))
	}
	return msgs
}

// personalFieldMessage maps a failed rule to the message the form shows.
// A blank field only ever reports "is required": the validator stops at the
// first failing tag per field, and notblank is listed first.
func personalFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return fe.Field() + " is required"
	case "email_basic":
		return "Invalid email format"
	case "age_range":
		return "Age must be between 1 and 120"
	case "phone_intl":
		return "Invalid phone number format"
	case "gender_enum":
		return "Invalid gender selection"
	default:
		return fe.Field() + " is invalid"
	}
}

// ValidateResponses returns the question numbers, ascending, whose answer is
// absent or not one of yes/no/sometimes. Non-string values count as missing.
func ValidateResponses(r models.Responses) []string {
	var missing []string
	for i := 1; i <= questionCount; i++ {
		ans, _ := r["q"+strconv.Itoa(i)].(string)
		if !allowedAnswers[ans] {
			missing = append(missing, strconv.Itoa(i))
		}
	}
	return missing
}

// NormalizePersonalDetails produces the canonical form written to the sheet:
// trimmed fields, lowercased email and gender, age as an integer. Call only
// after ValidatePersonalDetails has passed.
func NormalizePersonalDetails(d *models.PersonalDetails) models.NormalizedDetails {
	age, _ := strconv.Atoi(strings.TrimSpace(string(d.Age)))
	return models.NormalizedDetails{
		Name:   strings.TrimSpace(d.Name),
		Email:  strings.ToLower(strings.TrimSpace(d.Email)),
		Phone:  strings.TrimSpace(d.Phone),
		Age:    age,
		Gender: strings.ToLower(strings.TrimSpace(d.Gender)),
	}
}
