package encode

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

// FormatSuffix returns the file extension for the given format.
func FormatSuffix(f Format) string {
	switch f {
	case YAMLFormat:
		return ".yaml"
	default:
		return ".json"
	}
}

type EncodeOption func(*EncState)

func EncodeFormat(f Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Indent enables indented JSON output with n spaces per level.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeColors enables ANSI colorization of JSON output.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

// AutoColor enables colors only when w is a terminal.
func AutoColor(w io.Writer) EncodeOption {
	return func(es *EncState) {
		f, ok := w.(*os.File)
		if !ok {
			return
		}
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			es.colors = NewColors()
		}
	}
}
