package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/helmcode/symptomai/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"severity": {Type: TypeString, Enum: []string{"Severe", "Not Severe"}},
		"items":    {Type: TypeArray, Items: &Schema{Type: TypeString}},
	},
	Required: []string{"severity"},
}

func TestSchemaJSONSchema(t *testing.T) {
	got := testSchema.JSONSchema()

	assert.Equal(t, "object", got["type"])
	assert.Equal(t, []string{"severity"}, got["required"])
	props := got["properties"].(map[string]interface{})
	severity := props["severity"].(map[string]interface{})
	assert.Equal(t, "string", severity["type"])
	assert.Equal(t, []string{"Severe", "Not Severe"}, severity["enum"])
	items := props["items"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"type": "string"}, items["items"])
}

func TestClaudeGenerate(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"content":[{"type":"text","text":"{\"severity\":\"Severe\"}"}]}`)
	}))
	defer srv.Close()

	c := NewClaude(Options{APIKey: "test-key", BaseURL: srv.URL})
	out, err := c.Generate(context.Background(), Request{Prompt: "hello", Schema: testSchema, Temperature: 0.5})

	require.NoError(t, err)
	assert.Equal(t, `{"severity":"Severe"}`, out)
	assert.Equal(t, defaultClaudeModel, body["model"])
	assert.InDelta(t, 0.5, body["temperature"], 1e-6)
	msgs := body["messages"].([]interface{})
	content := msgs[0].(map[string]interface{})["content"].(string)
	assert.True(t, strings.HasPrefix(content, "hello"))
	assert.Contains(t, content, `"Not Severe"`)
}

func TestClaudeGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer srv.Close()

	c := NewClaude(Options{APIKey: "test-key", BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), Request{Prompt: "hello"})

	assert.ErrorContains(t, err, "status 429")
}

func TestOpenAIGenerateUsesJSONMode(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"severity\":\"Not Severe\"}"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	o := NewOpenAI(Options{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-test"})
	out, err := o.Generate(context.Background(), Request{Prompt: "hello", Schema: testSchema, Temperature: 0.5})

	require.NoError(t, err)
	assert.Equal(t, `{"severity":"Not Severe"}`, out)
	assert.Equal(t, "gpt-test", body["model"])
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, body["response_format"])
	msgs := body["messages"].([]interface{})
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]interface{})["role"])
	assert.Equal(t, "hello", msgs[1].(map[string]interface{})["content"])
}

func TestOpenAIGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[]}`)
	}))
	defer srv.Close()

	o := NewOpenAI(Options{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := o.Generate(context.Background(), Request{Prompt: "hello"})

	assert.ErrorContains(t, err, "empty response")
}

func TestGeminiGenerateSendsSchema(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		raw, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"severity\":\"Severe\"}"}]}}]}`)
	}))
	defer srv.Close()

	g, err := NewGemini(context.Background(), Options{APIKey: "g-key", BaseURL: srv.URL})
	require.NoError(t, err)
	out, err := g.Generate(context.Background(), Request{Prompt: "hello", Schema: testSchema, Temperature: 0.5})

	require.NoError(t, err)
	assert.Equal(t, `{"severity":"Severe"}`, out)
	assert.Contains(t, string(raw), "application/json")
	assert.Contains(t, string(raw), "Not Severe")
}

func TestFactoryCreateLLM(t *testing.T) {
	f := NewFactory()
	ctx := context.Background()

	l, err := f.CreateLLM(ctx, ProviderClaude, Options{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultClaudeModel, l.Model())

	l, err = f.CreateLLM(ctx, ProviderOpenAI, Options{APIKey: "k", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", l.Model())

	_, err = f.CreateLLM(ctx, ProviderGemini, Options{})
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	_, err = f.CreateLLM(ctx, Provider("palm"), Options{APIKey: "k"})
	assert.ErrorContains(t, err, "unsupported LLM provider")

	assert.Len(t, f.GetAvailableProviders(), 3)
}

func TestCreateFromConfig(t *testing.T) {
	l, err := CreateFromConfig(context.Background(), config.LLMConfig{
		Provider:     "OpenAI",
		OpenAIAPIKey: "sk",
	})
	require.NoError(t, err)
	assert.Equal(t, defaultOpenAIModel, l.Model())
}
