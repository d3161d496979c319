package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Seniorities are the selectable seniority levels, in display order.
var Seniorities = []string{"Entry", "Associate", "Mid", "Senior", "Manager", "Director", "Executive"}

// Regions are the selectable region/market contexts, in display order.
var Regions = []string{"USA", "Canada", "UK & Ireland", "EMEA", "LATAM", "APAC", "Global"}

// GenerationParameters are the user-chosen knobs for one generation request.
// Immutable once a request starts.
type GenerationParameters struct {
	Seniority          string `json:"seniority" validate:"required,oneof=Entry Associate Mid Senior Manager Director Executive"`
	Region             string `json:"region" validate:"required,oneof=USA Canada 'UK & Ireland' EMEA LATAM APAC Global"`
	PerSection         int    `json:"perSection" validate:"min=3,max=10"`
	IncludeLegalFooter bool   `json:"includeLegalFooter"`
	Model              string `json:"model" validate:"required"`
}

// ErrInvalidParameters wraps every parameter validation failure.
var ErrInvalidParameters = errors.New("invalid generation parameters")

var validate = validator.New()

// Validate checks the parameters against the fixed option lists and bounds.
func (p GenerationParameters) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		f := errs[0]
		return fmt.Errorf("%w: %s value %q fails %q", ErrInvalidParameters, f.Field(), fmt.Sprint(f.Value()), f.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
}
