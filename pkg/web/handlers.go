package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helmcode/symptomai/pkg/analyzer"
	"github.com/helmcode/symptomai/pkg/intake"
	"github.com/helmcode/symptomai/pkg/model"
)

// Analyzer produces an analysis for a validated patient record.
type Analyzer interface {
	Analyze(ctx context.Context, patient model.Patient, coords *model.Coordinates) (*model.AnalysisResult, error)
}

// AnalysisHandler drives the form -> loading -> result/error flow. It keeps
// no state between requests, so resetting is a plain navigation to the form.
type AnalysisHandler struct {
	Analyzer           Analyzer
	GeolocationTimeout time.Duration
}

func NewAnalysisHandler(a Analyzer, geolocationTimeout time.Duration) *AnalysisHandler {
	return &AnalysisHandler{Analyzer: a, GeolocationTimeout: geolocationTimeout}
}

type formView struct {
	Form                 intake.Form
	Errors               intake.FieldErrors
	Genders              []model.Gender
	GeolocationTimeoutMS int64
}

type resultView struct {
	RequestID string
	Patient   model.Patient
	Result    *model.AnalysisResult
}

type errorView struct {
	Message string
}

func (h *AnalysisHandler) renderForm(c *gin.Context, status int, form intake.Form, errs intake.FieldErrors) {
	c.HTML(status, "form.html", formView{
		Form:                 form,
		Errors:               errs,
		Genders:              model.Genders,
		GeolocationTimeoutMS: h.GeolocationTimeout.Milliseconds(),
	})
}

// ShowForm renders an empty patient form.
func (h *AnalysisHandler) ShowForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, intake.Form{}, nil)
}

// SubmitForm validates the posted form and, when valid, runs exactly one
// analysis and renders the result or the generic error page.
func (h *AnalysisHandler) SubmitForm(c *gin.Context) {
	var form intake.Form
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, form, intake.FieldErrors{"form": "Invalid form submission."})
		return
	}

	patient, coords, errs := form.Validate()
	if !errs.Empty() {
		h.renderForm(c, http.StatusUnprocessableEntity, form, errs)
		return
	}

	requestID := GetRequestIDFromContext(c)
	if coords == nil {
		log.Printf("[%s] analysis requested without location", requestID)
	}
	result, err := h.Analyzer.Analyze(c.Request.Context(), patient, coords)
	if err != nil {
		log.Printf("[%s] analysis failed: %v", requestID, err)
		c.HTML(http.StatusBadGateway, "error.html", errorView{Message: analyzer.GenericErrorMessage})
		return
	}

	c.HTML(http.StatusOK, "result.html", resultView{
		RequestID: requestID,
		Patient:   patient,
		Result:    result,
	})
}

// AnalysisRequest represents the request body for the JSON analysis API.
type AnalysisRequest struct {
	Name        string             `json:"name"`
	Age         json.Number        `json:"age"`
	Gender      string             `json:"gender"`
	Symptoms    string             `json:"symptoms"`
	Coordinates *model.Coordinates `json:"coordinates,omitempty"`
}

func (r AnalysisRequest) form() intake.Form {
	f := intake.Form{
		Name:     r.Name,
		Age:      r.Age.String(),
		Gender:   r.Gender,
		Symptoms: r.Symptoms,
	}
	if r.Coordinates != nil {
		f.Latitude = strconv.FormatFloat(r.Coordinates.Latitude, 'f', -1, 64)
		f.Longitude = strconv.FormatFloat(r.Coordinates.Longitude, 'f', -1, 64)
	}
	return f
}

// AnalysisResponse is the payload of a successful API analysis.
type AnalysisResponse struct {
	RequestID string                `json:"requestId"`
	Patient   model.Patient         `json:"patient"`
	Result    *model.AnalysisResult `json:"result"`
}

// CreateAnalysis is the JSON counterpart of SubmitForm.
func (h *AnalysisHandler) CreateAnalysis(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	patient, coords, errs := req.form().Validate()
	if !errs.Empty() {
		ValidationFailed(c, errs)
		return
	}

	requestID := GetRequestIDFromContext(c)
	result, err := h.Analyzer.Analyze(c.Request.Context(), patient, coords)
	if err != nil {
		log.Printf("[%s] analysis failed: %v", requestID, err)
		Error(c, http.StatusBadGateway, analyzer.GenericErrorMessage)
		return
	}

	Success(c, "Analysis completed successfully", AnalysisResponse{
		RequestID: requestID,
		Patient:   patient,
		Result:    result,
	})
}
