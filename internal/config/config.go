package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/tidyup/internal/env"
	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/k1LoW/duration"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	SourceDir        string     `yaml:"source_directory" json:"source_directory" validate:"required,validDirPath"`
	TargetDir        string     `yaml:"target_directory" json:"target_directory" validate:"required,validDirPath"`
	BackupDir        string     `yaml:"backup_directory" json:"backup_directory" validate:"required,validDirPath"`
	FileTypes        Categories `yaml:"file_types" json:"file_types"`
	OrganizeByDate   bool       `yaml:"organize_by_date" json:"organize_by_date"`
	HandleDuplicates bool       `yaml:"handle_duplicates" json:"handle_duplicates"`
	CreateBackup     bool       `yaml:"create_backup" json:"create_backup"`
	GenerateReport   bool       `yaml:"generate_report" json:"generate_report"`
	MinFileSizeKB    float64    `yaml:"min_file_size_kb" json:"min_file_size_kb" validate:"gte=0"`
	MinFileSize      string     `yaml:"min_file_size,omitempty" json:"min_file_size,omitempty" validate:"validSize"`
	ReportDir        string     `yaml:"report_directory" json:"report_directory" validate:"required,validDirPath"`

	Engine  EngineConfig  `yaml:"engine" json:"engine"`
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

type EngineConfig struct {
	Parallelism       int    `yaml:"parallelism" json:"parallelism" validate:"gte=0,lte=256"`
	FileTimeout       string `yaml:"file_timeout" json:"file_timeout" validate:"validDuration"`
	MaxRenameAttempts int    `yaml:"max_rename_attempts" json:"max_rename_attempts" validate:"gte=0"`
	SeedMissingSource bool   `yaml:"seed_missing_source" json:"seed_missing_source"`
}

type ScanConfig struct {
	SkipHidden   bool          `yaml:"skip_hidden" json:"skip_hidden"`
	HiddenPrefix string        `yaml:"hidden_prefix" json:"hidden_prefix"`
	Exclude      ExcludeConfig `yaml:"exclude" json:"exclude"`
}

type ExcludeConfig struct {
	Files    []string `yaml:"files" json:"files"`
	Patterns []string `yaml:"patterns" json:"patterns" validate:"dive,validRegexp"`
	Globs    []string `yaml:"globs" json:"globs" validate:"dive,validGlob"`
	MaxSize  string   `yaml:"max_size,omitempty" json:"max_size,omitempty" validate:"validSize"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled" json:"enabled"`
	Level    string         `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Path     string         `yaml:"path,omitempty" json:"path,omitempty"`
	Rotation RotationConfig `yaml:"rotation" json:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" json:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" json:"max_files" validate:"gte=0"`
}

// MinFileSizeBytes returns the threshold below which files are left at the
// source. min_file_size wins over min_file_size_kb when both are set.
func (c Config) MinFileSizeBytes() int64 {
	if c.MinFileSize != "" {
		if n, err := units.RAMInBytes(c.MinFileSize); err == nil {
			return n
		}
	}
	return int64(c.MinFileSizeKB * 1024)
}

// MaxFileSizeBytes returns the exclusion ceiling, or 0 when unset.
func (c Config) MaxFileSizeBytes() int64 {
	if c.Scan.Exclude.MaxSize == "" {
		return 0
	}
	n, err := units.RAMInBytes(c.Scan.Exclude.MaxSize)
	if err != nil {
		return 0
	}
	return n
}

// FileTimeout returns the per-file deadline, or 0 when disabled.
func (c Config) FileTimeout() time.Duration {
	if c.Engine.FileTimeout == "" {
		return 0
	}
	d, err := duration.Parse(c.Engine.FileTimeout)
	if err != nil {
		return 0
	}
	return d
}

// ConfigError is returned when the configuration file cannot be read.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return heredoc.Docf(`
		Couldn't read the "%s" config file.
		Please try again after fixing it or specifying a valid config path.
		The default config path is %s.
		Run with --create-config to write an example file.
		Original error:
		%s
		`,
		e.Path,
		env.TIDYUP_CONFIG_PATH,
		indent.String(e.Err.Error(), 2),
	)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError is returned when a loaded configuration is inconsistent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field %s: %s", e.Field, e.Reason)
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error { return e.err }

type parser struct{}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validDirPath", validateDirPath)
	_ = validate.RegisterValidation("validDuration", validateDuration)
	_ = validate.RegisterValidation("validRegexp", validateRegexp)
	_ = validate.RegisterValidation("validGlob", validateGlob)

	return parser{}
}

func (p parser) decode(data []byte) (Config, error) {
	cfg := Default()
	// A supplied file_types table replaces the defaults rather than
	// merging into them.
	cfg.FileTypes = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.FileTypes == nil {
		cfg.FileTypes = DefaultCategories()
	}
	return cfg, p.finalize(&cfg)
}

func (p parser) finalize(cfg *Config) error {
	cfg.FileTypes = cfg.FileTypes.normalize()
	if cfg.Scan.HiddenPrefix == "" {
		cfg.Scan.HiddenPrefix = "."
	}

	for _, path := range []*string{&cfg.SourceDir, &cfg.TargetDir, &cfg.BackupDir, &cfg.ReportDir, &cfg.Logging.Path} {
		if *path == "" {
			continue
		}
		abs, err := expandPath(*path)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *path, err)
		}
		*path = abs
	}

	return p.validate(*cfg)
}

func (p parser) validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				return &ValidationError{
					Field:  e.Namespace(),
					Reason: fmt.Sprintf("%q fails %q", e.Value(), e.Tag()),
				}
			}
		}
		return err
	}

	seen := make(map[string]bool)
	for _, cat := range cfg.FileTypes {
		if cat.Name == "" {
			return &ValidationError{Field: "file_types", Reason: "category name must not be empty"}
		}
		if seen[cat.Name] {
			return &ValidationError{Field: "file_types", Reason: fmt.Sprintf("category %q is declared twice", cat.Name)}
		}
		seen[cat.Name] = true
	}

	if overlaps := cfg.FileTypes.Overlaps(); len(overlaps) > 0 {
		reasons := make([]string, 0, len(overlaps))
		for _, o := range overlaps {
			reasons = append(reasons, o.String())
		}
		return &ValidationError{
			Field:  "file_types",
			Reason: "ambiguous extensions: " + strings.Join(reasons, "; "),
		}
	}

	if cfg.SourceDir == cfg.TargetDir {
		return &ValidationError{Field: "target_directory", Reason: "must differ from source_directory"}
	}

	return nil
}

func (p parser) readConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	return p.decode(data)
}

// Parse loads the configuration at path. With an empty path the default
// location is tried, and built-in defaults are used when nothing is there.
func Parse(path string) (Config, error) {
	parser := initParser()

	configPath := path
	if configPath == "" {
		configPath = env.TIDYUP_CONFIG_PATH
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			slog.Debug("no config file found, using defaults", "config-file", configPath)
			cfg := Default()
			if err := parser.finalize(&cfg); err != nil {
				return cfg, parsingError{err: err}
			}
			return cfg, nil
		}
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err := parser.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}
	return cfg, nil
}

// Load decodes a configuration document (YAML or JSON) on top of the defaults.
func Load(data []byte) (Config, error) {
	cfg, err := initParser().decode(data)
	if err != nil {
		return cfg, parsingError{err: err}
	}
	return cfg, nil
}

// Validate re-checks a configuration built in code.
func Validate(cfg Config) error {
	return initParser().validate(cfg)
}

// SampleContents renders the default configuration as YAML.
func SampleContents() string {
	content, _ := yaml.Marshal(Default())
	return string(content)
}

// WriteSample writes the default configuration to path. It refuses to
// replace an existing file unless overwrite is set.
func WriteSample(path string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(SampleContents())
	return err
}
