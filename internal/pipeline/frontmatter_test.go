package pipeline

import "testing"

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantHeader string
		wantBody   string
	}{
		{
			name:       "dots closer",
			input:      "---\ntitle: Book\n...\n# Intro\n",
			wantHeader: "title: Book",
			wantBody:   "# Intro\n",
		},
		{
			name:       "dashes closer",
			input:      "---\ntitle: Book\n---\nbody\n",
			wantHeader: "title: Book",
			wantBody:   "body\n",
		},
		{
			name:       "earliest closer wins",
			input:      "---\na: 1\n...\nb\n---\nc\n",
			wantHeader: "a: 1",
			wantBody:   "b\n---\nc\n",
		},
		{
			name:       "no front matter",
			input:      "# Intro\n",
			wantHeader: "",
			wantBody:   "# Intro\n",
		},
		{
			name:       "unterminated block",
			input:      "---\ntitle: Book\n",
			wantHeader: "",
			wantBody:   "---\ntitle: Book\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header, body := SplitFrontMatter(tt.input)
			if header != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}
