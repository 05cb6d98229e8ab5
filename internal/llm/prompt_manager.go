package llm

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

type ModelProvider string
type PromptKey string

const (
	DefaultProvider ModelProvider = "default"

	PullRequestReviewPrompt PromptKey = "pr_review"
	RepositoryScanPrompt    PromptKey = "repo_scan"
)

// PromptManager holds the embedded prompt templates, keyed by task and model
// provider. Files are named <key>_<provider>.prompt.
type PromptManager struct {
	prompts map[PromptKey]map[ModelProvider]*template.Template
}

func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[PromptKey]map[ModelProvider]*template.Template),
	}

	files, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		key, provider, err := splitPromptName(file.Name())
		if err != nil {
			return nil, err
		}

		content, err := promptFiles.ReadFile("prompts/" + file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt file %s: %w", file.Name(), err)
		}

		if err := pm.register(key, provider, string(content)); err != nil {
			return nil, fmt.Errorf("failed to register prompt from file %s: %w", file.Name(), err)
		}
	}

	return pm, nil
}

func splitPromptName(fileName string) (PromptKey, ModelProvider, error) {
	baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	idx := strings.LastIndex(baseName, "_")
	if idx <= 0 || idx == len(baseName)-1 {
		return "", "", fmt.Errorf("invalid prompt filename %q: expected 'key_provider.prompt'", fileName)
	}
	return PromptKey(baseName[:idx]), ModelProvider(baseName[idx+1:]), nil
}

func (pm *PromptManager) register(key PromptKey, provider ModelProvider, content string) error {
	tmpl, err := template.New(string(key) + "_" + string(provider)).Option("missingkey=error").Parse(content)
	if err != nil {
		return fmt.Errorf("could not parse template: %w", err)
	}

	if _, ok := pm.prompts[key]; !ok {
		pm.prompts[key] = make(map[ModelProvider]*template.Template)
	}
	pm.prompts[key][provider] = tmpl
	return nil
}

// Get returns the template for key, preferring the provider-specific variant.
func (pm *PromptManager) Get(key PromptKey, provider ModelProvider) (*template.Template, error) {
	byProvider, ok := pm.prompts[key]
	if !ok {
		return nil, fmt.Errorf("no prompts found for key '%s'", key)
	}

	if tmpl, ok := byProvider[provider]; ok {
		return tmpl, nil
	}
	if tmpl, ok := byProvider[DefaultProvider]; ok {
		return tmpl, nil
	}

	return nil, fmt.Errorf("no template found for key '%s' and provider '%s', and no default was available", key, provider)
}

func (pm *PromptManager) Render(key PromptKey, provider ModelProvider, data any) (string, error) {
	tmpl, err := pm.Get(key, provider)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
