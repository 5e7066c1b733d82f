package analyzer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/helmcode/symptomai/pkg/llm"
	"github.com/helmcode/symptomai/pkg/model"
	"github.com/helmcode/symptomai/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time check to ensure fakeLLM implements llm.LLM
var _ llm.LLM = (*fakeLLM)(nil)

type fakeLLM struct {
	GenerateFunc func(ctx context.Context, req llm.Request) (string, error)
	calls        int32
}

func (f *fakeLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.GenerateFunc(ctx, req)
}

func (f *fakeLLM) Model() string { return "fake" }

var patient = model.Patient{Name: "Sam", Age: 52, Gender: model.GenderMale, Symptoms: "crushing chest pain and sweating"}

func TestAnalyzeSendsOneRequestWithSchema(t *testing.T) {
	var got llm.Request
	fake := &fakeLLM{GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
		got = req
		return `{"symptomSeverity":"Severe","analysis":"a","doctorSuggestion":"Cardiologist","urgentCareInstructions":"Go now.","disclaimer":"d"}`, nil
	}}
	a := NewWithLLM(fake, WithTemperature(0.3))

	result, err := a.Analyze(context.Background(), patient, &model.Coordinates{Latitude: 1.5, Longitude: 2.5})

	require.NoError(t, err)
	assert.EqualValues(t, 1, fake.calls)
	assert.True(t, result.IsSevere())
	assert.Equal(t, "Go now.", result.UrgentCareInstructions)
	assert.Equal(t, float32(0.3), got.Temperature)
	require.NotNil(t, got.Schema)
	assert.Contains(t, got.Schema.Required, "symptomSeverity")
	assert.Contains(t, got.Prompt, "latitude 1.5, longitude 2.5")
}

func TestAnalyzeWithoutCoordinates(t *testing.T) {
	var prompt string
	fake := &fakeLLM{GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
		prompt = req.Prompt
		return `{"symptomSeverity":"Not Severe","analysis":"a","doctorSuggestion":"GP","disclaimer":"d"}`, nil
	}}

	result, err := NewWithLLM(fake).Analyze(context.Background(), patient, nil)

	require.NoError(t, err)
	assert.Equal(t, model.SeverityNotSevere, result.SymptomSeverity)
	assert.Contains(t, prompt, "The patient's location is not available.")
}

func TestAnalyzeTransportError(t *testing.T) {
	cause := errors.New("connection reset")
	fake := &fakeLLM{GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
		return "", cause
	}}

	result, err := NewWithLLM(fake).Analyze(context.Background(), patient, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.ErrorIs(t, err, cause)
	assert.EqualValues(t, 1, fake.calls)
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	fake := &fakeLLM{GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
		return `{"symptomSeverity":"Severe","analysis":"a"}`, nil
	}}

	result, err := NewWithLLM(fake).Analyze(context.Background(), patient, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.ErrorIs(t, err, parser.ErrMalformedResponse)
}

func TestAnalyzeAppliesTimeout(t *testing.T) {
	fake := &fakeLLM{GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		<-ctx.Done()
		return "", ctx.Err()
	}}

	_, err := NewWithLLM(fake, WithTimeout(10*time.Millisecond)).Analyze(context.Background(), patient, nil)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
