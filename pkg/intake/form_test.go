package intake

import (
	"testing"

	"github.com/helmcode/symptomai/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		Name:     "Jane Doe",
		Age:      "34",
		Gender:   "Female",
		Symptoms: "persistent headache and slight fever for two days",
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	patient, coords, errs := validForm().Validate()

	require.True(t, errs.Empty(), "unexpected errors: %v", errs)
	assert.Nil(t, coords)
	assert.Equal(t, model.Patient{
		Name:     "Jane Doe",
		Age:      34,
		Gender:   model.GenderFemale,
		Symptoms: "persistent headache and slight fever for two days",
	}, patient)
}

func TestValidateRejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		field  string
		msg    string
	}{
		{"empty name", func(f *Form) { f.Name = "" }, "name", MsgNameRequired},
		{"blank name", func(f *Form) { f.Name = "   " }, "name", MsgNameRequired},
		{"empty age", func(f *Form) { f.Age = "" }, "age", MsgInvalidAge},
		{"non-numeric age", func(f *Form) { f.Age = "thirty" }, "age", MsgInvalidAge},
		{"zero age", func(f *Form) { f.Age = "0" }, "age", MsgInvalidAge},
		{"negative age", func(f *Form) { f.Age = "-4" }, "age", MsgInvalidAge},
		{"age above range", func(f *Form) { f.Age = "121" }, "age", MsgInvalidAge},
		{"short symptoms", func(f *Form) { f.Symptoms = "headache" }, "symptoms", MsgSymptomsLength},
		{"padded short symptoms", func(f *Form) { f.Symptoms = "   cough      " }, "symptoms", MsgSymptomsLength},
		{"unknown gender", func(f *Form) { f.Gender = "Robot" }, "gender", MsgInvalidGender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			_, _, errs := f.Validate()
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}
}

func TestValidateReportsEveryInvalidField(t *testing.T) {
	_, _, errs := Form{}.Validate()

	assert.Equal(t, FieldErrors{
		"name":     MsgNameRequired,
		"age":      MsgInvalidAge,
		"symptoms": MsgSymptomsLength,
	}, errs)
}

func TestValidateAgeBoundaries(t *testing.T) {
	for _, age := range []string{"1", "120", " 45 "} {
		f := validForm()
		f.Age = age
		_, _, errs := f.Validate()
		assert.True(t, errs.Empty(), "age %q: %v", age, errs)
	}
}

func TestValidateDefaultsGender(t *testing.T) {
	f := validForm()
	f.Gender = ""
	patient, _, errs := f.Validate()

	require.True(t, errs.Empty())
	assert.Equal(t, model.GenderMale, patient.Gender)
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon string
		want     *model.Coordinates
	}{
		{"valid", "40.7128", "-74.0060", &model.Coordinates{Latitude: 40.7128, Longitude: -74.0060}},
		{"missing", "", "", nil},
		{"only latitude", "40.7128", "", nil},
		{"garbage", "north", "west", nil},
		{"out of range", "91", "10", nil},
		{"nan", "NaN", "10", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Latitude, f.Longitude = tt.lat, tt.lon
			_, coords, errs := f.Validate()
			assert.True(t, errs.Empty())
			assert.Equal(t, tt.want, coords)
		})
	}
}
