package condtable

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, v View, cfg exportConfig) error {
	enc := yaml.NewEncoder(w)
	if cfg.indent != "" {
		enc.SetIndent(len(cfg.indent))
	}
	if err := enc.Encode(newDocument(v)); err != nil {
		return err
	}
	return enc.Close()
}
