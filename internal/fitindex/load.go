package fitindex

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadPolicy reads a scoring policy from a JSON file. The file may be
// partial: it is unmarshalled over DefaultPolicy, so any field it leaves out
// keeps the canonical value. Overriding one factor weight therefore requires
// restating the others so they still sum to 1.0; Validate enforces that.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy unmarshals policy JSON over DefaultPolicy and validates the
// result.
func ParsePolicy(data []byte) (*Policy, error) {
	policy := DefaultPolicy()
	if err := json.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return policy, nil
}
