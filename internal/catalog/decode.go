package catalog

import (
	"encoding/json"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/joestump/gator-probe/internal/tmpl"
)

// extensions lists the accepted file formats in lookup order.
var extensions = []string{".json", ".yaml", ".yml"}

// decodeDocument parses a JSON or YAML file into a Value, picking the format
// from the file extension.
func decodeDocument(name string, data []byte) (tmpl.Value, error) {
	var raw any
	switch path.Ext(name) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return tmpl.Value{}, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return tmpl.Value{}, err
		}
	default:
		return tmpl.Value{}, fmt.Errorf("unsupported file extension %q", path.Ext(name))
	}
	return tmpl.FromAny(raw)
}

// remarshal copies a decoded document onto a typed destination.
func remarshal(v tmpl.Value, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
