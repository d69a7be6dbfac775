package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports which extraction stage finally gave up on a generation
// payload. Stage is one of "direct", "fenced", "repaired".
type ParseError struct {
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonutil: %s parse failed: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z0-9_]+)\s*:`)
)

// Extract parses LLM text output into v with best effort:
//  1. direct parse of the trimmed text
//  2. first fenced code block (optionally tagged json)
//  3. heuristic syntax repair: trailing commas stripped, bare keys quoted
//
// If all three fail it returns a *ParseError carrying the last parser error.
func Extract(text string, v any) error {
	trimmed := strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	if m := fencedBlockRe.FindStringSubmatch(trimmed); len(m) == 2 {
		inner := strings.TrimSpace(m[1])
		if err := json.Unmarshal([]byte(inner), v); err == nil {
			return nil
		}
		if err := json.Unmarshal([]byte(RepairSyntax(inner)), v); err == nil {
			return nil
		}
	}

	repaired := RepairSyntax(trimmed)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return &ParseError{Stage: "repaired", Err: err}
	}
	return nil
}

// ExtractObject is Extract specialized to a JSON object payload.
func ExtractObject(text string) (map[string]any, error) {
	var obj map[string]any
	if err := Extract(text, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ExtractRaw accepts a raw generation response directly.
func ExtractRaw(raw json.RawMessage, v any) error {
	return Extract(string(raw), v)
}

// RepairSyntax applies the two malformations LLM output actually exhibits:
// trailing commas before } or ], and unquoted object keys.
func RepairSyntax(s string) string {
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2":`)
	return s
}

// MarshalNoEscape encodes v into JSON without escaping <, >, & into < etc.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Remove trailing newline from json.Encoder.Encode
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
