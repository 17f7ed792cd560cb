package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	TokenizerConfig struct {
		// Delimiters overrides built-in set of separator characters, empty
		// means default.
		Delimiters string `yaml:"delimiters"`
	}

	DocumentConfig struct {
		PreloadStyles      bool            `yaml:"preload_styles"`
		Streaming          bool            `yaml:"streaming"`
		ProbeImages        bool            `yaml:"probe_images"`
		UnknownStyle       string          `yaml:"unknown_style" validate:"required,oneof=lenient strict"`
		DefaultFont        string          `yaml:"default_font" validate:"required"`
		DefaultFontSize    float64         `yaml:"default_font_size" validate:"gte=0"`
		Output             OutputFmt       `yaml:"output" validate:"gte=0"`
		Sentences          bool            `yaml:"sentences"`
		Language           string          `yaml:"language"`
		OutputNameTemplate string          `yaml:"output_name_template"`
		FileNameSlug       bool            `yaml:"file_name_slug"`
		Tokenizer          TokenizerConfig `yaml:"tokenizer"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// checkLanguage makes sure sentence splitter language is a parsable BCP 47
// tag, validator's own tag check is stricter than x/text and rejects some of
// the forms people actually use ("en_US").
func checkLanguage(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok || len(cfg.Document.Language) == 0 {
		return
	}
	if _, err := language.Parse(cfg.Document.Language); err != nil {
		sl.ReportError(cfg.Document.Language, "Language", "language", "bcp47", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkLanguage)); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
