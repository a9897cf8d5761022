package config

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/civilian-dev/civilian/internal/errors"
)

// Codec decodes and encodes route tables of one file format.
type Codec interface {
	Decode(data []byte, v any) error
	Encode(v any) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type yamlCodec struct{}

func (yamlCodec) Decode(data []byte, v any) error { return yaml.Unmarshal(data, v) }
func (yamlCodec) Encode(v any) ([]byte, error)    { return yaml.Marshal(v) }

type tomlCodec struct{}

func (tomlCodec) Decode(data []byte, v any) error { return toml.Unmarshal(data, v) }
func (tomlCodec) Encode(v any) ([]byte, error)    { return toml.Marshal(v) }

// codecs maps a lower-case file extension to its codec.
var codecs = map[string]Codec{
	".json": jsonCodec{},
	".yaml": yamlCodec{},
	".yml":  yamlCodec{},
	".toml": tomlCodec{},
}

// CodecFor returns the codec for the extension of path.
func CodecFor(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := codecs[ext]; ok {
		return c, nil
	}
	return nil, errors.New("E121").
		WithLocation(path, 0).
		WithDetailf("extension %q", ext).
		WithSuggestion("Use one of " + strings.Join(Extensions(), ", "))
}

// Extensions lists the supported file extensions.
func Extensions() []string {
	exts := make([]string, 0, len(codecs))
	for ext := range codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
