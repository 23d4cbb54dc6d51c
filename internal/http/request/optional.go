// Package request holds payload decoding helpers shared by the HTTP
// handlers.
package request

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

var nullLiteral = []byte("null")

// OptionalUUID distinguishes a field that was absent from one sent as an
// explicit null. Absent leaves Set false; null sets Set with a nil Value,
// which clears the reference on update.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true

	if bytes.Equal(data, nullLiteral) {
		o.Value = nil
		return nil
	}

	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}

	o.Value = &id

	return nil
}
