// Package validation wires go-playground/validator into Echo so every
// create and update body goes through the same schema-style checks.
package validation

import (
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FieldError is one failed rule, returned inside the 400 body so
// clients can see which field broke which constraint.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Errors is the error type Validate returns on failed input.
type Errors []FieldError

func (e Errors) Error() string { return "validation failed" }

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds the validator and registers the custom rules:
//
//	halfstep — the value must land on a 0.5 grid (rating scores)
func New() *RequestValidator {
	v := validator.New()
	_ = v.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
		scaled := fl.Field().Float() * 2
		return math.Abs(scaled-math.Round(scaled)) < 1e-9
	})
	return &RequestValidator{validate: v}
}

// Validate checks the struct tags and converts failures into Errors.
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return fields
}

// BadRequest renders a validation failure as a 400 with structured
// field errors when available.
func BadRequest(c echo.Context, err error) error {
	if fields, ok := err.(Errors); ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fields})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
}
