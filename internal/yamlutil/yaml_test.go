package yamlutil_test

// Notes:
// - The Marshal error branch is not covered: goccy only fails on values such
//   as channels or funcs, which callers never pass.
// - MarshalOrdered output is decoded back with goccy instead of compared
//   byte for byte, so quoting choices of the encoder do not matter.

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2book/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Config decoding
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		errText string
	}{
		{
			name: "valid YAML",
			data: []byte("name: book\ncount: 3\nenabled: true"),
			dest: &testConfig{},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: book"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "unknown field rejected",
			data:    []byte("name: book\ncolour: red"),
			dest:    &testConfig{},
			errText: "yamlutil:",
		},
		{
			name:    "invalid syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testConfig{},
			errText: "yamlutil:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			case tt.errText != "":
				if err == nil || !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("error = %v, want containing %q", err, tt.errText)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				cfg := tt.dest.(*testConfig)
				if cfg.Name != "book" || cfg.Count != 3 || !cfg.Enabled {
					t.Errorf("decoded = %+v", cfg)
				}
			}
		})
	}
}

func TestUnmarshal_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	var got testConfig
	err := yamlutil.Unmarshal([]byte("name: trpl\nauthor: someone\ncount: 2\n"), &got)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Name != "trpl" || got.Count != 2 {
		t.Errorf("Unmarshal() = %+v", got)
	}

	if err := yamlutil.Unmarshal(nil, &got); !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("Unmarshal(nil) error = %v, want ErrNilData", err)
	}
}

func TestUnmarshalStrict_InputTooLarge(t *testing.T) {
	// Not parallel: modifies the package-level limit.
	orig := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 8
	defer func() { yamlutil.MaxInputSize = orig }()

	err := yamlutil.UnmarshalStrict([]byte("name: a long book title"), &testConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshalOrdered - Front matter encoding
// ---------------------------------------------------------------------------

func TestMarshalOrdered(t *testing.T) {
	t.Parallel()

	fields := []yamlutil.Field{
		{Key: "title", Value: "The Rust Programming Language"},
		{Key: "author", Value: "The Rust Team"},
		{Key: "date", Value: "2015-05-15"},
		{Key: "links-as-notes", Value: true},
		{Key: "toc-depth", Value: 2},
	}

	out, err := yamlutil.MarshalOrdered(fields)
	if err != nil {
		t.Fatalf("MarshalOrdered() error = %v", err)
	}

	// Keys appear in input order.
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != len(fields) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(fields), out)
	}
	for i, f := range fields {
		if !strings.HasPrefix(lines[i], f.Key+":") {
			t.Errorf("line %d = %q, want key %q", i, lines[i], f.Key)
		}
	}

	var back struct {
		Title        string `yaml:"title"`
		Author       string `yaml:"author"`
		Date         string `yaml:"date"`
		LinksAsNotes bool   `yaml:"links-as-notes"`
		TOCDepth     int    `yaml:"toc-depth"`
	}
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if back.Title != "The Rust Programming Language" || back.Date != "2015-05-15" ||
		!back.LinksAsNotes || back.TOCDepth != 2 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestMarshalOrdered_Deterministic(t *testing.T) {
	t.Parallel()

	fields := []yamlutil.Field{{Key: "b", Value: 1}, {Key: "a", Value: "x: y"}}

	first, err := yamlutil.MarshalOrdered(fields)
	if err != nil {
		t.Fatal(err)
	}
	second, err := yamlutil.MarshalOrdered(fields)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("outputs differ:\n%s\n%s", first, second)
	}
}

func TestMarshalOrdered_InvalidKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fields  []yamlutil.Field
		wantErr error
	}{
		{"empty key", []yamlutil.Field{{Key: "", Value: 1}}, yamlutil.ErrEmptyKey},
		{"duplicate key", []yamlutil.Field{{Key: "a", Value: 1}, {Key: "a", Value: 2}}, yamlutil.ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := yamlutil.MarshalOrdered(tt.fields); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
