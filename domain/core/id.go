package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// TriggerID identifies one activation of the search control
type TriggerID ID

func (id TriggerID) String() string { return ID(id).String() }

// NewTriggerID creates a fresh trigger identifier
func NewTriggerID() TriggerID { return TriggerID(NewID()) }

// ParseTriggerID parses a client-supplied trigger id, which must be a UUID
func ParseTriggerID(s string) (TriggerID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("trigger ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("trigger ID %q is not a UUID: %w", s, err)
	}
	return TriggerID(s), nil
}
