package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/siyuan-infoblox/pretty-import/pkg/utils"
)

// FileNames lists the config file names searched for, in order of preference
var FileNames = []string{".pimrc.yaml", ".pimrc.yml", "pim.toml"}

// Load decodes a config file. The format is chosen by extension: .toml is
// TOML, anything else YAML. Unknown keys are rejected.
func Load(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, errors.Wrapf(err, "cannot read %s", path)
	}

	var o Overrides
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		meta, err := toml.Decode(string(data), &o)
		if err != nil {
			return Overrides{}, errors.Wrapf(err, "parse error in %s", path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Overrides{}, errors.Errorf("unknown key %q in %s", undecoded[0].String(), path)
		}
		return o, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&o); err != nil && err != io.EOF {
		return Overrides{}, errors.Wrapf(err, "parse error in %s", path)
	}
	return o, nil
}

// Find returns the nearest config file above filePath, or an empty string
func Find(filePath string) string {
	return utils.FindUp(filePath, FileNames...)
}

// ForFile resolves the configuration for one source file: defaults, then the
// nearest config file (or explicitFile when set), then the extra overrides.
func ForFile(filePath, explicitFile string, extra ...Overrides) (Config, error) {
	path := explicitFile
	if path == "" {
		path = Find(filePath)
	}

	var layers []Overrides
	if path != "" {
		fromFile, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		layers = append(layers, fromFile)
	}
	layers = append(layers, extra...)

	cfg, err := Resolve(layers...)
	if err != nil {
		if path != "" {
			return Config{}, errors.Wrapf(err, "invalid configuration in %s", path)
		}
		return Config{}, err
	}
	return cfg, nil
}
