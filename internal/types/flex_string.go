package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexString is a string that can be unmarshaled from a JSON string, number or null.
// Form-style inputs such as year and rating arrive either way.
type FlexString string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	// Try unmarshaling as a string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	// Then as a number, keeping its literal text
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	return fmt.Errorf("FlexString: unexpected type, expected string, number or null")
}

// String returns the trimmed text.
func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// Empty reports whether the trimmed text is empty.
func (f FlexString) Empty() bool {
	return f.String() == ""
}
