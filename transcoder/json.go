package transcoder

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
)

var (
	errNotObject = stderrors.New("expected a JSON object")
	errNotArray  = stderrors.New("expected a JSON array")
)

// parseObject parses text as a JSON object, keeping member values raw so large
// integers survive untouched.
func parseObject(text string) (map[string]json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, errNotObject
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseArray parses text as a JSON array of raw elements.
func parseArray(text string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, errNotArray
	}
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &arr); err != nil {
		return nil, err
	}
	return arr, nil
}

// valueText converts a raw JSON value into the text handed to a nested encoder.
// Strings are unquoted; everything else is passed as its JSON source.
func valueText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// jsonString extracts a JSON string member.
func jsonString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// jsonSource renders a raw JSON value compactly with object keys sorted and
// strings kept quoted. Numbers keep their original digits.
func jsonSource(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}

	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(out.String(), "\n"), nil
}
