// Package config loads kong flag values from a YAML document.
//
//	var cli struct {
//	    Config kong.ConfigFlag `help:"YAML config file."`
//	    Listen string          `default:":8080" env:"ENGINE_LISTEN"`
//	    DB     struct {
//	        Driver string `default:"sqlite"`
//	    } `embed:"" prefix:"db-"`
//	}
//	kong.Parse(&cli, kong.Configuration(config.YAML, "/etc/engine.yaml"))
//
// A flag named db-driver is looked up as the top-level key "db-driver",
// then "db_driver", then the nested path db.driver. Flags given on the
// command line or through the environment take precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when the YAML cannot be decoded into a mapping.
var ErrInvalidDocument = errors.New("config: invalid document")

// YAML is a kong.ConfigurationLoader for YAML files.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := Lookup(values, flag.Name)
		if !ok {
			return nil, nil
		}
		return normalize(raw), nil
	}
	return f, nil
}

// Lookup finds the value for a dashed flag name in a decoded document.
func Lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	if v, ok := values[strings.ReplaceAll(name, "-", "_")]; ok {
		return v, true
	}

	head, rest, nested := strings.Cut(name, "-")
	if !nested {
		return nil, false
	}
	child, ok := values[head].(map[string]any)
	if !ok {
		return nil, false
	}
	return Lookup(child, rest)
}

// normalize turns scalars into strings so kong's mappers parse them the
// same way as command line values.
func normalize(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return strings.Join(out, ",")
	case map[string]any:
		return v
	default:
		return fmt.Sprint(v)
	}
}
