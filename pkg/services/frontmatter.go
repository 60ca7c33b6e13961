package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown format")

// ParseFrontMatter splits a content file into front matter, body and the
// front matter format (yaml, toml or json).
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := strings.ReplaceAll(string(content), "\r\n", "\n")
	// Check for YAML (---)
	if strings.HasPrefix(str, "---\n") {
		parts := strings.SplitN(str, "---", 3) // "", FM, Body
		if len(parts) == 3 {
			var fm map[string]interface{}
			if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
				return nil, "", "", fmt.Errorf("yaml front matter: %w", err)
			}
			return sanitizeFrontMatter(fm), strings.TrimSpace(parts[2]), "yaml", nil
		}
	}
	// Check for TOML (+++)
	if strings.HasPrefix(str, "+++\n") {
		parts := strings.SplitN(str, "+++", 3)
		if len(parts) == 3 {
			var fm map[string]interface{}
			if err := toml.Unmarshal([]byte(parts[1]), &fm); err != nil {
				return nil, "", "", fmt.Errorf("toml front matter: %w", err)
			}
			return sanitizeFrontMatter(fm), strings.TrimSpace(parts[2]), "toml", nil
		}
	}
	// Check for JSON ({)
	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		var fm map[string]interface{}
		if err := json.Unmarshal(content, &fm); err == nil {
			return fm, "", "json", nil
		}
	}

	return nil, "", "", ErrUnknownFormat
}

// ParseDataFile parses a whole data file (no front matter delimiters) by extension.
func ParseDataFile(content []byte, ext string) (map[string]interface{}, error) {
	var data map[string]interface{}
	var err error
	switch strings.TrimPrefix(ext, ".") {
	case "yml", "yaml":
		err = yaml.Unmarshal(content, &data)
	case "toml":
		err = toml.Unmarshal(content, &data)
	case "json":
		err = json.Unmarshal(content, &data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return sanitizeFrontMatter(data), nil
}

// ParseContentFile parses a file of any supported kind into a content map.
// A Markdown body is stored under the "body" key.
func ParseContentFile(content []byte, ext string) (map[string]interface{}, error) {
	switch strings.TrimPrefix(ext, ".") {
	case "yml", "yaml", "toml", "json":
		return ParseDataFile(content, ext)
	}
	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return nil, err
	}
	if fm == nil {
		fm = map[string]interface{}{}
	}
	if body != "" {
		fm["body"] = body
	}
	return fm, nil
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}
