package jsonutil

import (
	"errors"
	"testing"
)

func TestExtractDirect(t *testing.T) {
	var v map[string]any
	if err := Extract(`  {"a": 1}  `, &v); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if v["a"] != float64(1) {
		t.Fatalf("a = %v", v["a"])
	}
}

func TestExtractFencedBlock(t *testing.T) {
	text := "Sure! Here's the result:\n```json\n{\"ok\": true}\n```\nLet me know."
	var v struct {
		OK bool `json:"ok"`
	}
	if err := Extract(text, &v); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !v.OK {
		t.Fatal("ok not parsed from fenced block")
	}
}

func TestExtractUntaggedFence(t *testing.T) {
	text := "```\n{\"n\": 2}\n```"
	var v map[string]any
	if err := Extract(text, &v); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if v["n"] != float64(2) {
		t.Fatalf("n = %v", v["n"])
	}
}

func TestExtractRepairsTrailingCommas(t *testing.T) {
	var v map[string]any
	if err := Extract(`{"items": [1, 2, 3,], "b": 1,}`, &v); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(v["items"].([]any)) != 3 {
		t.Fatalf("items = %v", v["items"])
	}
}

func TestExtractRepairsUnquotedKeys(t *testing.T) {
	var v map[string]any
	if err := Extract(`{title: "Hi", nested: {count: 2}}`, &v); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if v["title"] != "Hi" {
		t.Fatalf("title = %v", v["title"])
	}
}

func TestExtractRepairedFence(t *testing.T) {
	text := "```json\n{key: \"value\",}\n```"
	var v map[string]any
	if err := Extract(text, &v); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if v["key"] != "value" {
		t.Fatalf("key = %v", v["key"])
	}
}

func TestExtractFailureIsParseError(t *testing.T) {
	var v map[string]any
	err := Extract("not json at all", &v)
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Stage != "repaired" {
		t.Fatalf("stage = %q", pe.Stage)
	}
}

func TestRepairSyntaxLeavesValidJSONAlone(t *testing.T) {
	in := `{"a": "x, y", "b": [1, 2]}`
	if got := RepairSyntax(in); got != in {
		t.Fatalf("valid JSON mutated: %q", got)
	}
}

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"u": "https://a.b/?x=1&y=2"})
	if err != nil {
		t.Fatalf("MarshalNoEscape: %v", err)
	}
	want := `{"u":"https://a.b/?x=1&y=2"}`
	if string(out) != want {
		t.Fatalf("got %s, want %s", out, want)
	}
}
