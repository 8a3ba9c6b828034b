package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/cartsync/internal/ports"
)

// maxLineSize bounds one JSONL record.
const maxLineSize = 4 * 1024 * 1024

// JSONLResult counts the records of a JSONL stream.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// ValidateJSONLStream validates every non-blank line of ir and writes each
// valid snapshot to ow as one line of compact JSON. Invalid lines are counted
// and skipped.
func ValidateJSONLStream(ctx context.Context, validator ports.SnapshotValidator, ir io.Reader, ow io.Writer) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		snapshot, err := SnapshotFromJSON(ctx, validator, line)
		if err != nil {
			res.InvalidLinesCount++
			continue
		}

		out, _ := json.Marshal(snapshot)
		if _, err := ow.Write(append(out, '\n')); err != nil {
			return res, fmt.Errorf("write valid line: %w", err)
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
