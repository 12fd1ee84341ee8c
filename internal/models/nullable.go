package models

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// NullableUUID distinguishes an omitted JSON field from an explicit null.
// Set is true whenever the key was present in the document.
type NullableUUID struct {
	Set   bool
	Value *uuid.UUID
}

// UnmarshalJSON records presence and parses the id, accepting null.
func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}
