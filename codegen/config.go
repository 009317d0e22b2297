package codegen

import (
	"fmt"
	"os"
	"strings"

	"github.com/viant/tagly/format/text"
	"gopkg.in/yaml.v3"
)

// Config controls binding generation.
type Config struct {
	// Tag is the struct tag key marking bound fields.
	Tag string `yaml:"tag"`

	// OptionalMarkers is the closed set of names marking a field optional, either as
	// tag options or as separate struct tags with a true value.
	OptionalMarkers []string `yaml:"optionalMarkers"`

	// CaseFormat derives the JSON key of a field whose tag has no name, e.g. lowerCamel.
	// Empty keeps the Go field name.
	CaseFormat string `yaml:"caseFormat"`

	// Suffix is appended to the host type name to name its binder.
	Suffix string `yaml:"suffix"`

	// FileSuffix is appended to the snake cased host type name to name its output file.
	FileSuffix string `yaml:"fileSuffix"`

	// EnumFile names the file registering enum constants.
	EnumFile string `yaml:"enumFile"`

	// Types restricts generation to the listed host types.
	Types []string `yaml:"types"`

	// Workers bounds concurrent file emission.
	Workers int `yaml:"workers"`

	caseFormat text.CaseFormat
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	ret := &Config{}
	ret.Init()
	return ret
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ret := &Config{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", path, err)
	}
	ret.Init()
	return ret, ret.Validate()
}

// Init applies defaults.
func (c *Config) Init() {
	if c.Tag == "" {
		c.Tag = "epoxy"
	}
	if len(c.OptionalMarkers) == 0 {
		c.OptionalMarkers = []string{"optional", "nullable"}
	}
	if c.Suffix == "" {
		c.Suffix = "JSONBinder"
	}
	if c.FileSuffix == "" {
		c.FileSuffix = "_epoxy.go"
	}
	if c.EnumFile == "" {
		c.EnumFile = "enums" + c.FileSuffix
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.CaseFormat != "" {
		c.caseFormat = text.NewCaseFormat(c.CaseFormat)
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.CaseFormat != "" && !c.caseFormat.IsDefined() {
		return fmt.Errorf("unsupported caseFormat: %v", c.CaseFormat)
	}
	if !strings.HasSuffix(c.FileSuffix, ".go") {
		return fmt.Errorf("fileSuffix must end with .go: %v", c.FileSuffix)
	}
	if !strings.HasSuffix(c.EnumFile, ".go") {
		return fmt.Errorf("enumFile must end with .go: %v", c.EnumFile)
	}
	return nil
}

// jsonKey derives the JSON key of an untagged field name.
func (c *Config) jsonKey(fieldName string) string {
	if !c.caseFormat.IsDefined() {
		return fieldName
	}
	return text.DetectCaseFormat(fieldName).Format(fieldName, c.caseFormat)
}

func (c *Config) selected(typeName string) bool {
	if len(c.Types) == 0 {
		return true
	}
	for _, candidate := range c.Types {
		if candidate == typeName {
			return true
		}
	}
	return false
}
