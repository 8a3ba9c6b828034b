package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
)

// SnapshotFromJSON strictly decodes one cart payload and validates it.
func SnapshotFromJSON(ctx context.Context, validator ports.SnapshotValidator, raw []byte) (*domain.CartSnapshot, error) {
	var snapshot domain.CartSnapshot
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if snapshot.Lines == nil {
		snapshot.Lines = []domain.CartLine{}
	}
	if err := validator.Validate(ctx, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
