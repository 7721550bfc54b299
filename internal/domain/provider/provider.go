// Package provider defines the closed set of supported LLM model providers.
package provider

import (
	"fmt"

	"github.com/docsmith/docsmith/internal/domain"
)

// Provider identifies an LLM model provider.
type Provider string

const (
	OpenAI    Provider = "openai"
	Anthropic Provider = "anthropic"
	Groq      Provider = "groq"
	Local     Provider = "local"
)

// groqModels is the hosted inference API's supported-model list.
var groqModels = []string{
	"llama-3.1-405b-reasoning",
	"llama-3.1-8b-instant",
	"llama-3.2-1b-preview",
	"llama-3.2-3b-preview",
	"llama-3.2-11b-text-preview",
	"llama-3.2-90b-text-preview",
	"llama3-groq-70b-8192-tool-use-preview",
	"llama3-groq-8b-8192-tool-use-preview",
	"llama3-70b-8192",
	"llama3-8b-8192",
	"mixtral-8x7b-32768",
	"gemma-7b-it",
	"gemma2-9b-it",
	"meta-llama/llama-4-scout-17b-16e-instruct",
}

var openaiModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4-turbo",
	"gpt-4",
	"gpt-3.5-turbo",
}

var anthropicModels = []string{
	"claude-3-5-sonnet-20241022",
	"claude-3-5-haiku-20241022",
	"claude-3-opus-20240229",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

// Supported returns all valid provider names.
func Supported() []string {
	return []string{string(OpenAI), string(Anthropic), string(Groq), string(Local)}
}

// Parse validates a provider name.
func Parse(s string) (Provider, error) {
	switch Provider(s) {
	case OpenAI, Anthropic, Groq, Local:
		return Provider(s), nil
	}
	return "", fmt.Errorf("%w: unsupported provider %q (supported: %v)", domain.ErrValidation, s, Supported())
}

// Models returns the supported-model list for a provider.
// An empty list means any model id is accepted (local runtimes).
func (p Provider) Models() []string {
	switch p {
	case Groq:
		return groqModels
	case OpenAI:
		return openaiModels
	case Anthropic:
		return anthropicModels
	}
	return nil
}

// SupportsModel reports whether modelID is in the provider's supported list.
func (p Provider) SupportsModel(modelID string) bool {
	models := p.Models()
	if len(models) == 0 {
		return true
	}
	for _, m := range models {
		if m == modelID {
			return true
		}
	}
	return false
}

// MaxTokensBound returns the upper bound for the max_tokens setting.
func (p Provider) MaxTokensBound() int {
	if p == Groq {
		return 8192
	}
	return 32000
}
