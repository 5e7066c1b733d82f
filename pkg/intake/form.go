// Package intake turns raw patient form input into a validated patient record.
package intake

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/helmcode/symptomai/pkg/model"
)

const (
	MsgNameRequired   = "Name is required."
	MsgInvalidAge     = "Please enter a valid age."
	MsgInvalidGender  = "Please select a valid gender."
	MsgSymptomsLength = "Please describe your symptoms in at least 10 characters."
)

// Form holds the values exactly as submitted. Age and the coordinates stay
// strings so that garbage input can be reported instead of failing to bind.
type Form struct {
	Name      string `form:"name" json:"name"`
	Age       string `form:"age" json:"age"`
	Gender    string `form:"gender" json:"gender"`
	Symptoms  string `form:"symptoms" json:"symptoms"`
	Latitude  string `form:"latitude" json:"latitude"`
	Longitude string `form:"longitude" json:"longitude"`
}

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

type patientInput struct {
	Name     string `validate:"notblank"`
	Age      int    `validate:"min=1,max=120"`
	Gender   string `validate:"oneof=Male Female Other"`
	Symptoms string `validate:"trimmedmin=10"`
}

var fieldMessages = map[string]struct {
	key string
	msg string
}{
	"Name":     {"name", MsgNameRequired},
	"Age":      {"age", MsgInvalidAge},
	"Gender":   {"gender", MsgInvalidGender},
	"Symptoms": {"symptoms", MsgSymptomsLength},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("trimmedmin", trimmedMin); err != nil {
		panic(err)
	}
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

// Validate checks the submitted fields and builds the patient record. The
// returned coordinates are nil when the browser sent no usable location; a
// missing location is never a validation error.
func (f Form) Validate() (model.Patient, *model.Coordinates, FieldErrors) {
	gender := strings.TrimSpace(f.Gender)
	if gender == "" {
		gender = string(model.GenderMale)
	}
	// An unparsable age falls through to the range check.
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		age = 0
	}

	in := patientInput{
		Name:     f.Name,
		Age:      age,
		Gender:   gender,
		Symptoms: f.Symptoms,
	}

	errs := FieldErrors{}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs["form"] = err.Error()
		}
		for _, fe := range verrs {
			if m, ok := fieldMessages[fe.Field()]; ok {
				errs[m.key] = m.msg
			}
		}
	}

	patient := model.Patient{
		Name:     strings.TrimSpace(f.Name),
		Age:      age,
		Gender:   model.Gender(gender),
		Symptoms: strings.TrimSpace(f.Symptoms),
	}
	return patient, f.coordinates(), errs
}

func (f Form) coordinates() *model.Coordinates {
	lat, err := strconv.ParseFloat(strings.TrimSpace(f.Latitude), 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(f.Longitude), 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return nil
	}
	return &model.Coordinates{Latitude: lat, Longitude: lon}
}
