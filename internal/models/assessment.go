package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Gender is the biological sex reported on the assessment form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Level is the three-step scale used for cholesterol and glucose.
type Level string

const (
	LevelNormal          Level = "normal"
	LevelAboveNormal     Level = "above_normal"
	LevelWellAboveNormal Level = "well_above_normal"
)

// AssessmentInput is a fully validated set of cardiovascular risk factors.
// History entries embed this type directly, so anything stored was checked
// at write time.
type AssessmentInput struct {
	Age              int    `json:"age"` // days
	Gender           Gender `json:"gender"`
	Height           int    `json:"height"` // cm
	Weight           int    `json:"weight"` // kg
	SystolicBP       int    `json:"systolic_bp"`
	DiastolicBP      int    `json:"diastolic_bp"`
	Cholesterol      Level  `json:"cholesterol"`
	Glucose          Level  `json:"glucose"`
	Smoker           bool   `json:"smoker"`
	Alcohol          bool   `json:"alcohol"`
	PhysicallyActive bool   `json:"physically_active"`
}

// AssessmentRequest is the submission payload before validation. Fields are
// pointers so that an absent field is distinguishable from a zero value;
// in particular `smoker: false` must not read as "smoker missing".
type AssessmentRequest struct {
	Age              *int    `json:"age" validate:"required,min=1,max=50000"`
	Gender           *Gender `json:"gender" validate:"required,oneof=male female"`
	Height           *int    `json:"height" validate:"required,min=50,max=250"`
	Weight           *int    `json:"weight" validate:"required,min=10,max=300"`
	SystolicBP       *int    `json:"systolic_bp" validate:"required,min=70,max=250"`
	DiastolicBP      *int    `json:"diastolic_bp" validate:"required,min=40,max=150"`
	Cholesterol      *Level  `json:"cholesterol" validate:"required,oneof=normal above_normal well_above_normal"`
	Glucose          *Level  `json:"glucose" validate:"required,oneof=normal above_normal well_above_normal"`
	Smoker           *bool   `json:"smoker" validate:"required"`
	Alcohol          *bool   `json:"alcohol" validate:"required"`
	PhysicallyActive *bool   `json:"physically_active" validate:"required"`
}

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the JSON field names the client submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate applies every per-field constraint and reports all violations at
// once. An empty slice means the request is acceptable wholesale; a single
// violation blocks submission.
func (r *AssessmentRequest) Validate() []FieldError {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "request", Message: "could not be validated"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

// fieldMessage turns a validator error into the inline message shown next
// to the offending field.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return "is invalid"
	}
}

// Input converts a validated request into the canonical AssessmentInput.
// Call only after Validate has returned no errors.
func (r *AssessmentRequest) Input() AssessmentInput {
	return AssessmentInput{
		Age:              *r.Age,
		Gender:           *r.Gender,
		Height:           *r.Height,
		Weight:           *r.Weight,
		SystolicBP:       *r.SystolicBP,
		DiastolicBP:      *r.DiastolicBP,
		Cholesterol:      *r.Cholesterol,
		Glucose:          *r.Glucose,
		Smoker:           *r.Smoker,
		Alcohol:          *r.Alcohol,
		PhysicallyActive: *r.PhysicallyActive,
	}
}
