package config

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/router"
)

const jsonTable = `{
  "appPath": "/shop",
  "ignoreExtension": true,
  "params": [
    {"name": "customerId", "convert": "int"},
    {"name": "idparam", "kind": "preceded", "prefix": "id", "inner": {"convert": "int"}},
    {"name": "day", "kind": "ymd"}
  ],
  "routes": [
    {"path": "/customers", "handler": "customers"},
    {"path": "/customers/{customerId}/details", "handler": "details"},
    {"path": "/orders/{idparam}", "handler": "order"},
    {"path": "/archive/{day}", "handler": "archive"}
  ]
}
`

const yamlTable = `appPath: /shop
ignoreExtension: true
params:
  - name: customerId
    convert: int
  - name: idparam
    kind: preceded
    prefix: id
    inner:
      convert: int
  - name: day
    kind: ymd
routes:
  - path: /customers
    handler: customers
  - path: /customers/{customerId}/details
    handler: details
  - path: /orders/{idparam}
    handler: order
  - path: /archive/{day}
    handler: archive
`

const tomlTable = `appPath = "/shop"
ignoreExtension = true

[[params]]
name = "customerId"
convert = "int"

[[params]]
name = "idparam"
kind = "preceded"
prefix = "id"

  [params.inner]
  convert = "int"

[[params]]
name = "day"
kind = "ymd"

[[routes]]
path = "/customers"
handler = "customers"

[[routes]]
path = "/customers/{customerId}/details"
handler = "details"

[[routes]]
path = "/orders/{idparam}"
handler = "order"

[[routes]]
path = "/archive/{day}"
handler = "archive"
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hasCode(err error, code string) bool {
	return stderrors.Is(err, errors.New(code))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "civilian.json", jsonTable},
		{"yaml", "civilian.yaml", yamlTable},
		{"yml", "routes.yml", yamlTable},
		{"toml", "civilian.toml", tomlTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			cfg, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if cfg.Path() != path || cfg.Dir() != filepath.Dir(path) {
				t.Errorf("Path()/Dir() = %q/%q", cfg.Path(), cfg.Dir())
			}
			if len(cfg.Params) != 3 || len(cfg.Routes) != 4 {
				t.Fatalf("params/routes = %d/%d", len(cfg.Params), len(cfg.Routes))
			}
			if cfg.Params[1].Inner == nil || cfg.Params[1].Inner.Kind != KindSegment {
				t.Errorf("inner param = %+v", cfg.Params[1].Inner)
			}
			checkTree(t, cfg)
		})
	}
}

func checkTree(t *testing.T, cfg *Config) {
	t.Helper()
	tree, err := cfg.BuildTree(discardLogger())
	if err != nil {
		t.Fatalf("BuildTree() error = %v", err)
	}
	if tree.AppPath() != "/shop" {
		t.Errorf("AppPath() = %q", tree.AppPath())
	}

	r := router.New(tree, router.WithLogger(discardLogger()))
	matches := []struct {
		path    string
		handler string
		value   string
		want    any
	}{
		{"/customers", "customers", "", nil},
		{"/customers/42/details.json", "details", "customerId", 42},
		{"/orders/id/5", "order", "idparam", 5},
		{"/archive/2011/10/09", "archive", "", nil},
	}
	for _, m := range matches {
		res, err := r.Match(context.Background(), m.path)
		if err != nil {
			t.Fatalf("Match(%q) error = %v", m.path, err)
		}
		if res.HandlerID() != m.handler {
			t.Errorf("Match(%q) handler = %q, want %q", m.path, res.HandlerID(), m.handler)
		}
		if m.value != "" {
			if v, _ := res.Values.Lookup(m.value); v != m.want {
				t.Errorf("Match(%q) %s = %v, want %v", m.path, m.value, v, m.want)
			}
		}
	}

	got, err := r.URL("details", map[string]any{"customerId": 7})
	if err != nil || got != "/shop/customers/7/details" {
		t.Errorf("URL(details) = %q, %v", got, err)
	}
	got, err = r.URL("order", map[string]any{"idparam": 5})
	if err != nil || got != "/shop/orders/id/5" {
		t.Errorf("URL(order) = %q, %v", got, err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("json preferred", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "civilian.toml", tomlTable)
		writeFile(t, dir, "civilian.json", `{"routes": [{"path": "/a", "handler": "a"}]}`)

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if filepath.Base(cfg.Path()) != "civilian.json" || len(cfg.Routes) != 1 {
			t.Errorf("loaded %s with %d routes", cfg.Path(), len(cfg.Routes))
		}
	})

	t.Run("toml only", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "civilian.toml", tomlTable)
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if filepath.Base(cfg.Path()) != "civilian.toml" {
			t.Errorf("loaded %s", cfg.Path())
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := Load(t.TempDir()); !hasCode(err, "E123") {
			t.Errorf("Load() error = %v, want E123", err)
		}
	})
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code string
	}{
		{"unsupported", writeFile(t, dir, "routes.ini", "a=b"), "E121"},
		{"missing", filepath.Join(dir, "nope.json"), "E123"},
		{"bad json", writeFile(t, dir, "bad.json", `{"routes": [`), "E120"},
		{"bad yaml", writeFile(t, dir, "bad.yaml", "routes: [\n  - path: ["), "E120"},
		{"bad toml", writeFile(t, dir, "bad.toml", "[[routes]\n"), "E120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			if !hasCode(err, tt.code) {
				t.Errorf("LoadFile() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "civilian.json", `{"params": [{"name": "p"}]}`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AppPath != "/" {
		t.Errorf("AppPath = %q, want /", cfg.AppPath)
	}
	if cfg.Params[0].Kind != KindSegment {
		t.Errorf("Kind = %q, want segment", cfg.Params[0].Kind)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		codes []string
	}{
		{"app path", Config{AppPath: "/{x}"}, []string{"E122"}},
		{"empty path", Config{Routes: []RouteConfig{{Handler: "a"}}}, []string{"E122"}},
		{"relative path", Config{Routes: []RouteConfig{{Path: "a", Handler: "a"}}}, []string{"E122"}},
		{"no handler", Config{Routes: []RouteConfig{{Path: "/a"}}}, []string{"E122"}},
		{"no param name", Config{Params: []ParamConfig{{Kind: KindSegment}}}, []string{"E122"}},
		{"unknown kind", Config{Params: []ParamConfig{{Name: "p", Kind: "glob"}}}, []string{"E122", "E108"}},
		{"duplicate param", Config{Params: []ParamConfig{{Name: "p"}, {Name: "p"}}}, []string{"E122", "E101"}},
		{"bad regex", Config{Params: []ParamConfig{{Name: "p", Kind: KindRegex, Regex: "("}}}, []string{"E122", "E103"}},
		{"regex groups", Config{Params: []ParamConfig{{Name: "p", Kind: KindRegex, Regex: "a", Build: "a*"}}}, []string{"E103"}},
		{"wildcard", Config{Params: []ParamConfig{{Name: "p", Kind: KindPattern, Pattern: "a*b*"}}}, []string{"E102"}},
		{"preceded without inner", Config{Params: []ParamConfig{{Name: "p", Kind: KindPreceded, Prefix: "id"}}}, []string{"E108"}},
		{"unknown converter", Config{Params: []ParamConfig{{Name: "p", Convert: "decimal"}}}, []string{"E111"}},
		{"convert multi", Config{Params: []ParamConfig{{Name: "p", Kind: KindMulti, Convert: "int"}}}, []string{"E112"}},
		{"negative min", Config{Params: []ParamConfig{{Name: "p", Kind: KindMulti, Min: -1}}}, []string{"E110"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			for _, code := range tt.codes {
				if !hasCode(err, code) {
					t.Errorf("Validate() error = %v, want %s", err, code)
				}
			}
		})
	}

	valid := Config{
		AppPath: "/",
		Params: []ParamConfig{
			{Name: "q", Kind: KindOptional, Inner: &ParamConfig{Kind: KindSegment, Pattern: "p*"}},
			{Name: "tail", Kind: KindMulti, Min: 1},
			{Name: "code", Kind: KindRegex, Regex: "c-([0-9]+)", Build: "c-*", Convert: "int"},
		},
		Routes: []RouteConfig{{Path: "/a/{q}", Handler: "a"}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBuilderRouteErrors(t *testing.T) {
	tests := []struct {
		name   string
		routes []RouteConfig
		code   string
	}{
		{"unknown param", []RouteConfig{{Path: "/a/{nope}", Handler: "a"}}, "E106"},
		{"duplicate mapping", []RouteConfig{{Path: "/a", Handler: "a"}, {Path: "/a", Handler: "b"}}, "E105"},
		{"ancestor reuse", []RouteConfig{{Path: "/{p}/{p}", Handler: "a"}}, "E104"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Params = []ParamConfig{{Name: "p", Kind: KindSegment}}
			cfg.Routes = tt.routes
			_, err := cfg.BuildTree(discardLogger())
			if !hasCode(err, "E122") || !hasCode(err, tt.code) {
				t.Errorf("BuildTree() error = %v, want E122 wrapping %s", err, tt.code)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := New()
	cfg.IgnoreIndex = true
	cfg.Routes = []RouteConfig{{Path: "/docs", Handler: "docs"}}

	tree, err := cfg.BuildTree(discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if m := tree.Match("/docs/index"); !m.Complete || m.Resource.HandlerID() != "docs" {
		t.Errorf("Match(/docs/index) = %v (%v)", m.Resource, m.Complete)
	}
	if m := tree.Match("/docs.html"); m.Complete {
		t.Error("extensions are kept unless ignoreExtension is set")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src, err := LoadFile(writeFile(t, dir, "civilian.json", jsonTable))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"out.json", "out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := src.SaveTo(path); err != nil {
				t.Fatalf("SaveTo() error = %v", err)
			}
			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if got.AppPath != src.AppPath || got.IgnoreExtension != src.IgnoreExtension {
				t.Errorf("flags = %q/%v", got.AppPath, got.IgnoreExtension)
			}
			if !reflect.DeepEqual(got.Params, src.Params) {
				t.Errorf("params = %+v, want %+v", got.Params, src.Params)
			}
			if !reflect.DeepEqual(got.Routes, src.Routes) {
				t.Errorf("routes = %+v, want %+v", got.Routes, src.Routes)
			}
		})
	}

	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
	if err := src.SaveTo(filepath.Join(dir, "out.ini")); !hasCode(err, "E121") {
		t.Errorf("SaveTo(.ini) error = %v, want E121", err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "civilian.yml", yamlTable)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists() mismatch")
	}
}

func TestCodecFor(t *testing.T) {
	for _, ext := range Extensions() {
		if _, err := CodecFor("routes" + ext); err != nil {
			t.Errorf("CodecFor(%s) error = %v", ext, err)
		}
	}
	if _, err := CodecFor("ROUTES.TOML"); err != nil {
		t.Errorf("extensions are case-insensitive: %v", err)
	}
	if _, err := CodecFor("routes"); !hasCode(err, "E121") {
		t.Errorf("CodecFor(no ext) error = %v", err)
	}
}
