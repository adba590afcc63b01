// Package config loads the settings of a parrainage installation: where
// sessions are stored, where reports are written, the institution domain
// used in addresses and the program table.
//
// Settings come from a YAML file or a CUE file. CUE files are unified with
// an embedded #Config schema, so constraint violations are reported with
// their position in the file.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/identity"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

//go:embed schema.cue
var schemaCUE string

// Defaults used for settings absent from the configuration file.
const (
	DefaultDatabase  = "parrainage.db"
	DefaultOutputDir = "uploads"
)

// ErrUnsupportedFormat is returned for configuration files that are
// neither YAML nor CUE.
var ErrUnsupportedFormat = errors.New("unsupported config format")

var programCode = regexp.MustCompile(`^[a-z]+$`)

// Config holds installation settings.
type Config struct {
	Database  string       `json:"database,omitempty" yaml:"database,omitempty"`     // SQLite file
	OutputDir string       `json:"output_dir,omitempty" yaml:"output_dir,omitempty"` // Root of generated reports
	Domain    string       `json:"domain,omitempty" yaml:"domain,omitempty"`         // Institution domain, e.g. "istc.ci"
	Programs  []ir.Program `json:"programs,omitempty" yaml:"programs,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	programs := make([]ir.Program, len(ir.DefaultPrograms))
	copy(programs, ir.DefaultPrograms)
	return &Config{
		Database:  DefaultDatabase,
		OutputDir: DefaultOutputDir,
		Domain:    identity.DefaultDomain,
		Programs:  programs,
	}
}

// ProgramTable returns the program lookup built from the configuration.
func (c *Config) ProgramTable() ir.ProgramTable {
	return ir.NewProgramTable(c.Programs)
}

// Deriver returns an identity deriver for the configured programs and
// domain.
func (c *Config) Deriver() *identity.Deriver {
	return identity.NewDeriver(c.ProgramTable(), c.Domain)
}

// Validate checks program codes and names for consistency.
func (c *Config) Validate() error {
	if c.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	codes := make(map[string]bool, len(c.Programs))
	names := make(map[string]bool, len(c.Programs))
	for i, p := range c.Programs {
		if p.Name == "" {
			return fmt.Errorf("programs[%d]: name is required", i)
		}
		if !programCode.MatchString(p.Code) {
			return fmt.Errorf("programs[%d]: code %q must be lowercase letters", i, p.Code)
		}
		name := strings.ToUpper(p.Name)
		if names[name] {
			return fmt.Errorf("programs[%d]: duplicate name %q", i, p.Name)
		}
		if codes[p.Code] {
			return fmt.Errorf("programs[%d]: duplicate code %q", i, p.Code)
		}
		names[name] = true
		codes[p.Code] = true
	}
	return nil
}

// applyDefaults fills settings left empty by the file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Database == "" {
		c.Database = d.Database
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Domain == "" {
		c.Domain = d.Domain
	}
	if len(c.Programs) == 0 {
		c.Programs = d.Programs
	}
}

// Load reads a configuration file. The format is chosen from the
// extension: .yaml/.yml or .cue. Missing settings take their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = decodeYAML(data)
	case ".cue":
		cfg, err = decodeCUE(path, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &cfg, nil
}

func decodeCUE(path string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v = schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, formatCUEError(err)
	}
	return &cfg, nil
}

// Error is a configuration error with its position in the source file.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// formatCUEError keeps the first CUE error together with its position.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	format, args := first.Msg()
	e := &Error{Message: fmt.Sprintf(format, args...)}
	if path := first.Path(); len(path) > 0 {
		e.Message = strings.Join(path, ".") + ": " + e.Message
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
