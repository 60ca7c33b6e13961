package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// CMSConfig is the site configuration read from static/admin/config.yml.
type CMSConfig struct {
	SiteURL      string       `yaml:"site_url" json:"site_url,omitempty"`
	MediaFolder  string       `yaml:"media_folder" json:"media_folder,omitempty"`
	PublicFolder string       `yaml:"public_folder" json:"public_folder,omitempty"`
	I18n         *I18nSetting `yaml:"i18n" json:"i18n,omitempty"`
	Collections  []Collection `yaml:"collections" json:"collections"`
}

// Collection is either an entry collection (Folder + Fields) or a file
// collection (Files, each with its own Fields).
type Collection struct {
	Name         string            `yaml:"name" json:"name,omitempty"`
	Label        string            `yaml:"label" json:"label,omitempty"`
	Folder       string            `yaml:"folder" json:"folder,omitempty"`
	Path         string            `yaml:"path" json:"path,omitempty"`
	Extension    string            `yaml:"extension" json:"extension,omitempty"`
	Format       string            `yaml:"format" json:"format,omitempty"`
	MediaFolder  string            `yaml:"media_folder" json:"media_folder,omitempty"`
	PublicFolder string            `yaml:"public_folder" json:"public_folder,omitempty"`
	Fields       []Field           `yaml:"fields" json:"fields,omitempty"`
	Files        []CollectionFile  `yaml:"files" json:"files,omitempty"`
	I18n         *I18nSetting      `yaml:"i18n" json:"i18n,omitempty"`
	Filter       *CollectionFilter `yaml:"filter" json:"filter,omitempty"`

	// ResolvedI18n is computed on access and never written back to the config.
	ResolvedI18n I18nConfig `yaml:"-" json:"_i18n"`
}

// IsFileCollection reports whether entries are addressed by file name.
func (c *Collection) IsFileCollection() bool {
	return len(c.Files) > 0
}

// CollectionFile is one fixed file inside a file collection.
type CollectionFile struct {
	Name   string  `yaml:"name" json:"name"`
	Label  string  `yaml:"label" json:"label,omitempty"`
	File   string  `yaml:"file" json:"file"`
	Fields []Field `yaml:"fields" json:"fields,omitempty"`
}

// CollectionFilter narrows a folder collection to entries whose Field equals Value.
type CollectionFilter struct {
	Field string `yaml:"field" json:"field"`
	Value any    `yaml:"value" json:"value"`
}

// I18nOptions holds the i18n keys shared by the site and collection levels.
// Empty strings and nil slices mean "not set".
type I18nOptions struct {
	Structure     I18nStructure `yaml:"structure" json:"structure,omitempty"`
	Locales       []string      `yaml:"locales" json:"locales,omitempty"`
	DefaultLocale string        `yaml:"default_locale" json:"default_locale,omitempty"`
}

// I18nSetting is the authored `i18n` value: either a boolean or an options mapping.
type I18nSetting struct {
	Enabled bool
	Options *I18nOptions
}

func (s *I18nSetting) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("i18n: expected boolean or mapping at line %d: %w", node.Line, err)
		}
		s.Enabled = enabled
		s.Options = nil
	case yaml.MappingNode:
		var opts I18nOptions
		if err := node.Decode(&opts); err != nil {
			return fmt.Errorf("i18n: %w", err)
		}
		s.Enabled = true
		s.Options = &opts
	default:
		return fmt.Errorf("i18n: expected boolean or mapping at line %d", node.Line)
	}
	return nil
}

func (s I18nSetting) MarshalYAML() (interface{}, error) {
	if s.Options != nil {
		return s.Options, nil
	}
	return s.Enabled, nil
}

func (s I18nSetting) MarshalJSON() ([]byte, error) {
	if s.Options != nil {
		return json.Marshal(s.Options)
	}
	return json.Marshal(s.Enabled)
}

// I18nStructure is how localized copies of an entry are laid out on disk.
type I18nStructure string

const (
	SingleFile      I18nStructure = "single_file"
	MultipleFiles   I18nStructure = "multiple_files"
	MultipleFolders I18nStructure = "multiple_folders"
)

// I18nConfig is the effective i18n configuration of one collection.
// When HasLocales is false, Locales is empty and DefaultLocale is "".
type I18nConfig struct {
	Structure     I18nStructure `json:"structure"`
	HasLocales    bool          `json:"hasLocales"`
	Locales       []string      `json:"locales"`
	DefaultLocale string        `json:"defaultLocale,omitempty"`
}
