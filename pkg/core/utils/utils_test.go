package utils

import (
	"errors"
	"strings"
	"testing"
)

type item struct {
	ID    string  `json:"id"`
	Price float64 `json:"wholesale_price"`
}

func TestSmartParse_StandardJSON(t *testing.T) {
	var got []item
	if _, err := SmartParse([]byte(`[{"id":"p1","wholesale_price":4.5}]`), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" || got[0].Price != 4.5 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestSmartParse_Repair(t *testing.T) {
	var got []item
	input := `[{'id': 'p1', 'wholesale_price': 4.5,},]`
	if _, err := SmartParse([]byte(input), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestParseHJSON(t *testing.T) {
	input := `{
  # product row
  id: p2
  wholesale_price: 5
}`
	out, err := ParseHJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"id":"p2"`) {
		t.Errorf("expected standard JSON, got %s", out)
	}
}

func TestSmartParse_TypeMismatch(t *testing.T) {
	var got []item
	_, err := SmartParse([]byte(`{"id": ["not", "a", "string"]}`), &got)
	if !errors.Is(err, ErrUnparseable) {
		t.Errorf("expected ErrUnparseable, got %v", err)
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1>Title</h1>") {
		t.Errorf("expected heading, got %s", html)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("expected GFM table, got %s", html)
	}
}
