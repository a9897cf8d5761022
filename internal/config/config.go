package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/routepath"
	"github.com/civilian-dev/civilian/pkg/router"
)

// ConfigFileName is the default name of the route table.
const ConfigFileName = "civilian.json"

// FileNames lists the route table names Load looks for, in order.
var FileNames = []string{ConfigFileName, "civilian.yaml", "civilian.yml", "civilian.toml"}

// Config is a route table.
type Config struct {
	// AppPath is prepended to every built route (default: "/").
	AppPath string `json:"appPath,omitempty" yaml:"appPath,omitempty" toml:"appPath,omitempty"`

	// IgnoreExtension strips ".ext" from the last path segment before matching.
	IgnoreExtension bool `json:"ignoreExtension,omitempty" yaml:"ignoreExtension,omitempty" toml:"ignoreExtension,omitempty"`

	// IgnoreIndex drops a trailing "index" segment before matching.
	IgnoreIndex bool `json:"ignoreIndex,omitempty" yaml:"ignoreIndex,omitempty" toml:"ignoreIndex,omitempty"`

	// Params declares the path parameters routes may reference as "{name}".
	Params []ParamConfig `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`

	// Routes maps path patterns to handler ids.
	Routes []RouteConfig `json:"routes,omitempty" yaml:"routes,omitempty" toml:"routes,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RouteConfig maps one path pattern to a handler id.
type RouteConfig struct {
	Path    string `json:"path" yaml:"path" toml:"path"`
	Handler string `json:"handler" yaml:"handler" toml:"handler"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{AppPath: "/"}
}

// Load reads the first route table found in dir, trying FileNames in order.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E123").
		WithDetail("No route table found in " + dir).
		WithSuggestion("Create " + ConfigFileName + " or pass the file with -c")
}

// LoadFile reads the route table at path. The format follows the file
// extension.
func LoadFile(path string) (*Config, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E123").
				WithLocation(path, 0).
				WithDetail("No route table at " + path)
		}
		return nil, errors.New("E120").WithLocation(path, 0).Wrap(err)
	}

	cfg := New()
	if err := codec.Decode(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithLocation(path, 0).
			WithDetail("Failed to decode " + filepath.Base(path)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format of its extension.
func (c *Config) SaveTo(path string) error {
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}
	data, err := codec.Encode(c)
	if err != nil {
		return errors.New("E120").WithLocation(path, 0).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").WithLocation(path, 0).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.AppPath == "" {
		c.AppPath = "/"
	}
	for i := range c.Params {
		c.Params[i].applyDefaults()
	}
}

// Validate checks the structure of the route table and builds its path
// parameters. Route patterns are checked when the tree is built.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.AppPath, "{}?#") {
		return c.invalid("appPath %q must be a plain path", c.AppPath)
	}
	for i, r := range c.Routes {
		switch {
		case r.Path == "":
			return c.invalid("routes[%d]: path is required", i)
		case !strings.HasPrefix(r.Path, "/"):
			return c.invalid("routes[%d]: path %q must start with /", i, r.Path)
		case r.Handler == "":
			return c.invalid("routes[%d]: %s has no handler", i, r.Path)
		}
	}
	_, err := c.PathParams()
	return err
}

// Options returns the router options the route table selects.
func (c *Config) Options(logger *slog.Logger) []router.Option {
	var scan []routepath.ScanOption
	if c.IgnoreExtension {
		scan = append(scan, routepath.IgnoreExtension())
	}
	if c.IgnoreIndex {
		scan = append(scan, routepath.IgnoreIndex())
	}
	return []router.Option{
		router.WithAppPath(c.AppPath),
		router.WithLogger(logger),
		router.WithScanOptions(scan...),
	}
}

// Builder validates the route table and declares every route on a new
// builder.
func (c *Config) Builder(logger *slog.Logger) (*router.Builder, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	params, err := c.PathParams()
	if err != nil {
		return nil, err
	}

	b := router.NewBuilder(params, c.Options(logger)...)
	for i, r := range c.Routes {
		if err := b.AddPath(r.Path, r.Handler); err != nil {
			return nil, errors.New("E122").
				WithLocation(c.configPath, 0).
				WithDetailf("routes[%d]: %s -> %s", i, r.Path, r.Handler).
				Wrap(err)
		}
	}
	return b, nil
}

// BuildTree builds the resource tree of the route table.
func (c *Config) BuildTree(logger *slog.Logger) (*router.Tree, error) {
	b, err := c.Builder(logger)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

func (c *Config) invalid(format string, args ...any) *errors.Error {
	return errors.New("E122").
		WithLocation(c.configPath, 0).
		WithDetailf(format, args...)
}

// Exists checks if a route table exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a route table, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E123").
				WithDetail("No route table found in " + startDir + " or any parent directory").
				WithSuggestion("Create " + ConfigFileName + " or pass the file with -c")
		}
		dir = parent
	}
}
