package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id == "" {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestParseTriggerID(t *testing.T) {
	fresh := NewTriggerID()

	tests := []struct {
		input    string
		hasError bool
	}{
		{fresh.String(), false},
		{"", true},
		{"   ", true},
		{"3", true},
	}

	for _, test := range tests {
		result, err := ParseTriggerID(test.input)
		if test.hasError {
			if err == nil {
				t.Errorf("Expected error for input %q", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for input %q: %v", test.input, err)
		}
		if result != fresh {
			t.Errorf("Expected %q, got %q", fresh, result)
		}
	}
}

func TestDatasetHash(t *testing.T) {
	a := NewDatasetHash([]byte("Month,Miraflores\n2015-01,1800\n"))
	b := NewDatasetHash([]byte("Month,Miraflores\n2015-01,1800\n"))
	c := NewDatasetHash([]byte("Month,Miraflores\n2015-01,1801\n"))

	if a != b {
		t.Error("Expected identical contents to hash identically")
	}
	if a == c {
		t.Error("Expected different contents to hash differently")
	}
	if len(a.Short()) != 12 {
		t.Errorf("Expected 12 character short hash, got %q", a.Short())
	}
}

func TestDistrictNotFoundError(t *testing.T) {
	err := NewDistrictNotFoundError("Atlantis")
	if !IsNotFoundError(err) {
		t.Error("Expected district error to be a not-found error")
	}
	if err.Error() != `resource not found: district "Atlantis"` {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
