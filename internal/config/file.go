package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// readFile flattens a nested YAML document into env-style keys:
// {ollama: {url: x}} becomes OLLAMA_URL=x.
func readFile(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]string{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return parseFile(raw)
}

func parseFile(raw []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	out := make(map[string]string)
	flatten("", doc, out)
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(key), "-", "_"))
		if prefix != "" {
			name = prefix + "_" + name
		}
		switch typed := value.(type) {
		case map[string]any:
			flatten(name, typed, out)
		case nil:
		default:
			out[name] = fmt.Sprint(typed)
		}
	}
}
