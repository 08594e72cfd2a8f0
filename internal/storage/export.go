package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/physlab/internal/anim"
)

type ExportData struct {
	Meta   RunMetadata  `json:"meta"`
	Frames []anim.Frame `json:"frames"`
}

func ExportJSON(w io.Writer, meta RunMetadata, frames []anim.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Meta: meta, Frames: frames})
}
