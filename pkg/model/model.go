package model

// Gender is the patient's self-reported gender as offered by the intake form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the accepted values in form order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

type Patient struct {
	Name     string `json:"name" yaml:"name"`
	Age      int    `json:"age" yaml:"age"`
	Gender   Gender `json:"gender" yaml:"gender"`
	Symptoms string `json:"symptoms" yaml:"symptoms"`
}

// Coordinates is a best-effort location reported by the browser.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

type Severity string

const (
	SeveritySevere    Severity = "Severe"
	SeverityNotSevere Severity = "Not Severe"
)

// Valid reports whether s is one of the two severities the service may return.
func (s Severity) Valid() bool {
	return s == SeveritySevere || s == SeverityNotSevere
}

type Appointment struct {
	Date string `json:"date" yaml:"date"`
	Time string `json:"time" yaml:"time"`
}

type Medication struct {
	Name   string `json:"name" yaml:"name"`
	Dosage string `json:"dosage" yaml:"dosage"`
}

// MaxAppointments is the number of appointment slots requested from the service.
const MaxAppointments = 3

type AnalysisResult struct {
	SymptomSeverity        Severity      `json:"symptomSeverity" yaml:"symptomSeverity"`
	Analysis               string        `json:"analysis" yaml:"analysis"`
	DoctorSuggestion       string        `json:"doctorSuggestion" yaml:"doctorSuggestion"`
	SuggestedAppointments  []Appointment `json:"suggestedAppointments,omitempty" yaml:"suggestedAppointments,omitempty"`
	SuggestedMedications   []Medication  `json:"suggestedMedications,omitempty" yaml:"suggestedMedications,omitempty"`
	UrgentCareInstructions string        `json:"urgentCareInstructions,omitempty" yaml:"urgentCareInstructions,omitempty"`
	Disclaimer             string        `json:"disclaimer" yaml:"disclaimer"`
}

func (r *AnalysisResult) IsSevere() bool {
	return r.SymptomSeverity == SeveritySevere
}

// Normalize drops the payload that does not belong to the result's severity:
// severe results carry only urgent-care instructions, routine results carry
// only appointments (at most MaxAppointments) and medications.
func (r *AnalysisResult) Normalize() {
	if r.IsSevere() {
		r.SuggestedAppointments = nil
		r.SuggestedMedications = nil
		return
	}
	r.UrgentCareInstructions = ""
	if len(r.SuggestedAppointments) > MaxAppointments {
		r.SuggestedAppointments = r.SuggestedAppointments[:MaxAppointments]
	}
}
