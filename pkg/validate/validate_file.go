package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/cartsync/internal/ports"
)

// InputFormat selects how ValidateFile parses its input.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ParseFormat maps a CLI flag value to an InputFormat.
func ParseFormat(s string) (InputFormat, error) {
	switch f := InputFormat(strings.ToLower(s)); f {
	case FormatAuto, FormatJSON, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Summary counts the payloads seen by ValidateFile.
type Summary struct {
	Valid   int
	Invalid int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}

// detectFormat resolves FormatAuto by file extension; anything but .jsonl is JSON.
func detectFormat(path string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile validates a .json file (one payload) or a .jsonl file (one per
// line) and writes the canonical form of every valid payload to ow.
// A single invalid JSON payload is returned as an error; invalid JSONL lines
// are only counted.
func ValidateFile(ctx context.Context, validator ports.SnapshotValidator, path string, format InputFormat, ow io.Writer) (Summary, error) {
	format = detectFormat(path, format)
	if format != FormatJSON && format != FormatJSONL {
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if format == FormatJSONL {
		res, err := ValidateJSONLStream(ctx, validator, file, ow)
		return Summary{Valid: res.ValidLinesCount, Invalid: res.InvalidLinesCount}, err
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return Summary{}, fmt.Errorf("read file: %w", err)
	}
	snapshot, err := SnapshotFromJSON(ctx, validator, raw)
	if err != nil {
		return Summary{Invalid: 1}, err
	}
	out, _ := json.Marshal(snapshot)
	if _, err := ow.Write(append(out, '\n')); err != nil {
		return Summary{}, fmt.Errorf("write json: %w", err)
	}
	return Summary{Valid: 1}, nil
}
