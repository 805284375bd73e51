package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"mdscli/internal/config"
	"mdscli/internal/errors"
	"mdscli/internal/reference"
	"mdscli/pkg/contracts/domain"
)

// EnrollmentRequest carries the validated parameters of a dataset request.
type EnrollmentRequest struct {
	EndYear int    `json:"year" validate:"required,school_year"`
	Level   string `json:"level" validate:"omitempty,agg_level"`
	Format  string `json:"format" validate:"omitempty,oneof=wide tidy"`
	Refresh bool   `json:"refresh"`
}

// Validator wraps go-playground/validator with the domain rules.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New()

	v.RegisterValidation("school_year", isSupportedYear)
	v.RegisterValidation("agg_level", isAggregationLevel)
	v.RegisterValidation("lss_code", isLSSCode)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateRequest checks an EnrollmentRequest and returns a validation
// AppError naming the first failing field.
func (v *Validator) ValidateRequest(req *EnrollmentRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if ok := stderrors.As(err, &verrs); ok && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Field(), messageFor(fe))
		}
		return errors.NewValidationError("request", err.Error())
	}
	return nil
}

// ParseYear converts a path segment into a validated end year.
func ParseYear(raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError("year", fmt.Sprintf("%q is not a year", raw))
	}
	if !config.YearSupported(year) {
		return 0, errors.NewValidationError("year",
			fmt.Sprintf("year %d outside supported range %d-%d", year, config.MinEndYear, config.MaxEndYear))
	}
	return year, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "school_year":
		return fmt.Sprintf("must be between %d and %d", config.MinEndYear, config.MaxEndYear)
	case "agg_level":
		return "must be one of State, District, School"
	case "lss_code":
		return "must be a two-digit LSS code between 01 and 24"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func isSupportedYear(fl validator.FieldLevel) bool {
	return config.YearSupported(int(fl.Field().Int()))
}

func isAggregationLevel(fl validator.FieldLevel) bool {
	switch domain.AggregationLevel(fl.Field().String()) {
	case domain.LevelState, domain.LevelDistrict, domain.LevelSchool:
		return true
	}
	return false
}

func isLSSCode(fl validator.FieldLevel) bool {
	_, ok := reference.LSSCodes[fl.Field().String()]
	return ok
}
