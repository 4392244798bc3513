package mock

import (
	"encoding/json"
	"fmt"
)

// Encode serializes the app data into the persisted blob.
func Encode(d AppData) ([]byte, error) {
	d.normalize()
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode app data: %w", err)
	}
	return b, nil
}

// EncodeIndent is Encode with indentation, for editing and export.
func EncodeIndent(d AppData) ([]byte, error) {
	d.normalize()
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode app data: %w", err)
	}
	return b, nil
}

// Decode parses a blob. It does not validate.
func Decode(b []byte) (AppData, error) {
	var d AppData
	if err := json.Unmarshal(b, &d); err != nil {
		return AppData{}, fmt.Errorf("decode app data: %w", err)
	}
	d.normalize()
	return d, nil
}

// DecodeValid parses a blob and validates the result.
func DecodeValid(b []byte) (AppData, error) {
	d, err := Decode(b)
	if err != nil {
		return AppData{}, err
	}
	if err := Validate(d); err != nil {
		return AppData{}, err
	}
	return d, nil
}
