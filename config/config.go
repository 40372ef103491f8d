// Package config holds process-wide defaults for decoding FBX scenes:
// the legacy codepage used for 8-bit string properties, and the
// optional YAML file format consumed by scene.WithConfigFile. Callers
// that need per-load overrides should use scene.WithCharmap/
// scene.WithConfigFile instead of mutating these defaults directly.
package config

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

var currentCharMap *charmap.Charmap = charmap.Windows1252

// SetEncoding changes the default codepage used to decode 8-bit FBX
// string properties (binary dialect `S` tags; `R` blobs and text
// dialect strings are not decoded through it). Most FBX exporters write
// plain ASCII, but some older Asian-locale exporters do not.
func SetEncoding(name string) error {
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if cm.String() == name {
				currentCharMap = cm
				return nil
			}
		}
	}
	return errors.Errorf("unknown encoding %q", name)
}

func ListEncodings() []string {
	list := make([]string, 0)
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			list = append(list, cm.String())
		}
	}
	return list
}

func GetEncoding() *charmap.Charmap {
	return currentCharMap
}

// File is the optional YAML configuration format for embedding
// applications that want to pin a non-default charmap or add
// custom TimeMode frame-rate entries without touching code.
type File struct {
	Encoding        string            `yaml:"encoding"`
	CustomFrameRate map[int]float64   `yaml:"custom_frame_rates"`
	Extra           map[string]string `yaml:"extra,omitempty"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "unmarshaling config %q", path)
	}
	if f.Encoding != "" {
		if err := SetEncoding(f.Encoding); err != nil {
			return nil, err
		}
	}
	return &f, nil
}
