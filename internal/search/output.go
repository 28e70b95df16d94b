package search

import (
	"encoding/json"
	"io"

	"github.com/j-fro/greprs/internal/config"
)

type record struct {
	Line string `json:"line"`
}

// put writes one matching line to out in the format requested by cfg.
func put(out io.Writer, cfg *config.Config, line string) error {
	switch cfg.Output {
	case config.OutputJSONL:
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		return enc.Encode(record{Line: line})
	case config.OutputNull:
		_, err := io.WriteString(out, line+"\x00")
		return err
	default:
		_, err := io.WriteString(out, line+"\n")
		return err
	}
}
