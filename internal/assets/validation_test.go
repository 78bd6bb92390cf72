package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain template", "book.tex", false},
		{"style name", "pandoc", false},
		{"hyphenated", "my-style", false},
		{"empty", "", true},
		{"forward slash", "styles/pandoc", true},
		{"backslash", `styles\pandoc`, true},
		{"null byte", "book\x00.tex", true},
		{"hidden file", ".hidden", true},
		{"parent traversal", "..", true},
		{"embedded traversal", "a..b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAssetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
		})
	}
}

func TestValidateStyleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"bare name", "epub", false},
		{"with extension", "epub.css", true},
		{"empty", "", true},
		{"separator", "a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateStyleName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateStyleName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
