package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/helmcode/symptomai/pkg/config"
	"github.com/helmcode/symptomai/pkg/llm"
	"github.com/helmcode/symptomai/pkg/model"
	"github.com/helmcode/symptomai/pkg/parser"
	"github.com/helmcode/symptomai/pkg/prompts"
)

// ErrAnalysisFailed is the only error callers of Analyze see. The cause is
// logged and kept in the wrap chain.
var ErrAnalysisFailed = errors.New("failed to get health analysis from AI model")

// GenericErrorMessage is the only failure text users ever see.
const GenericErrorMessage = "An error occurred while analyzing the symptoms. Please try again."

type Analyzer struct {
	llm         llm.LLM
	temperature float32
	timeout     time.Duration
}

// Option tweaks an Analyzer built by NewWithLLM.
type Option func(*Analyzer)

func WithTemperature(t float32) Option {
	return func(a *Analyzer) { a.temperature = t }
}

// WithTimeout bounds each Analyze call. Zero leaves the caller's context as is.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

func NewWithLLM(l llm.LLM, opts ...Option) *Analyzer {
	a := &Analyzer{llm: l, temperature: llm.DefaultTemperature}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (*Analyzer, error) {
	l, err := llm.CreateFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithLLM(l, WithTemperature(cfg.Temperature), WithTimeout(cfg.Timeout)), nil
}

func (a *Analyzer) Model() string {
	return a.llm.Model()
}

// Analyze sends one analysis request for the patient. coords may be nil.
func (a *Analyzer) Analyze(ctx context.Context, patient model.Patient, coords *model.Coordinates) (*model.AnalysisResult, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	rawResp, err := a.llm.Generate(ctx, llm.Request{
		Prompt:      prompts.BuildSymptomPrompt(patient, coords),
		Schema:      prompts.ResponseSchema(),
		Temperature: a.temperature,
	})
	if err != nil {
		log.Printf("analysis: %s request failed: %v", a.llm.Model(), err)
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	result, err := parser.ParseAnalysisResponse(rawResp)
	if err != nil {
		log.Printf("analysis: %s returned an unusable response: %v", a.llm.Model(), err)
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	return result, nil
}
