package bookforge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuildBookHTML - Built-in and custom book shells
// ---------------------------------------------------------------------------

func TestBuildBookHTML(t *testing.T) {
	t.Parallel()

	t.Run("built-in template with author", func(t *testing.T) {
		t.Parallel()

		got, err := buildBookHTML("My Book", "Jane Doe", "<h1>Chapter</h1>", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"<!DOCTYPE html>",
			"<title>My Book</title>",
			`<div class="title-page">`,
			"<h1>My Book</h1>",
			"by Jane Doe",
			"<h1>Chapter</h1>",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("author line omitted when empty", func(t *testing.T) {
		t.Parallel()

		got, err := buildBookHTML("My Book", "", "<p>body</p>", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(got, `class="author"`) {
			t.Error("output contains author div for empty author")
		}
	})

	t.Run("title is escaped, content is not", func(t *testing.T) {
		t.Parallel()

		got, err := buildBookHTML("<b>Title</b>", "", "<em>kept</em>", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(got, "<b>Title</b>") {
			t.Error("title was not escaped")
		}
		if !strings.Contains(got, "&lt;b&gt;Title&lt;/b&gt;") {
			t.Error("escaped title not found")
		}
		if !strings.Contains(got, "<em>kept</em>") {
			t.Error("content HTML was escaped")
		}
	})

	t.Run("custom template substitutes placeholders", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.html")
		tmpl := "<html><h1>{{ title }}</h1><p>{{ author }}</p>{{ content }}</html>"
		if err := os.WriteFile(path, []byte(tmpl), 0o644); err != nil {
			t.Fatalf("writing template: %v", err)
		}

		got, err := buildBookHTML("T", "A", "<p>C</p>", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "<html><h1>T</h1><p>A</p><p>C</p></html>"
		if got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("missing custom template", func(t *testing.T) {
		t.Parallel()

		_, err := buildBookHTML("T", "A", "C", filepath.Join(t.TempDir(), "nope.html"))
		if !errors.Is(err, ErrTemplateRender) {
			t.Fatalf("error = %v, want %v", err, ErrTemplateRender)
		}
	})
}

// ---------------------------------------------------------------------------
// TestInjectCSS - Style block placement
// ---------------------------------------------------------------------------

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		css          string
		wantContains []string
		wantOrder    [2]string // first must appear before second
	}{
		{
			name:         "before closing head",
			html:         "<html><head><title>x</title></head><body></body></html>",
			css:          "body { color: red; }",
			wantContains: []string{"<style>body { color: red; }</style>"},
			wantOrder:    [2]string{"<style>", "</head>"},
		},
		{
			name:         "after body when no head",
			html:         `<html><body class="x"><p>hi</p></body></html>`,
			css:          "p { margin: 0; }",
			wantContains: []string{`<body class="x"><style>`},
		},
		{
			name:         "prepended when no head or body",
			html:         "<p>fragment</p>",
			css:          "p { margin: 0; }",
			wantContains: []string{"<style>p { margin: 0; }</style><p>fragment</p>"},
		},
		{
			name:         "case insensitive head match",
			html:         "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			css:          "b { }",
			wantContains: []string{"<style>b { }</style></HEAD>"},
		},
		{
			name:         "closing tags in CSS are escaped",
			html:         "<html><head></head><body></body></html>",
			css:          "/* </style><script>alert(1)</script> */",
			wantContains: []string{`<\/style>`},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injectCSS(tt.html, tt.css)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			if tt.wantOrder[0] != "" {
				first := strings.Index(got, tt.wantOrder[0])
				second := strings.Index(got, tt.wantOrder[1])
				if first == -1 || second == -1 || first > second {
					t.Errorf("%q should appear before %q\ngot: %s", tt.wantOrder[0], tt.wantOrder[1], got)
				}
			}
		})
	}

	t.Run("empty CSS is a no-op", func(t *testing.T) {
		t.Parallel()

		html := "<html><head></head></html>"
		if got := injectCSS(html, ""); got != html {
			t.Errorf("output = %q, want unchanged input", got)
		}
	})
}
