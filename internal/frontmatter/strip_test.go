package frontmatter

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "basic removal",
			content: "---\ntitle: x\ntags: [a]\n---\n\n# Content\n\nText here\n",
			want:    "\n# Content\n\nText here\n",
		},
		{
			name:    "no front matter",
			content: "# Just content\n",
			want:    "# Just content\n",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
		{
			name:    "only front matter",
			content: "---\ntitle: x\n---\n",
			want:    "",
		},
		{
			name:    "only front matter without trailing newline",
			content: "---\ntitle: x\n---",
			want:    "",
		},
		{
			name:    "unclosed block unchanged",
			content: "---\ntitle: x\nbody without closing\n",
			want:    "---\ntitle: x\nbody without closing\n",
		},
		{
			name:    "must start on first line",
			content: "\n---\ntitle: x\n---\nbody\n",
			want:    "\n---\ntitle: x\n---\nbody\n",
		},
		{
			name:    "malformed yaml still stripped",
			content: "---\ntitle: x\nstatus\n---\nbody\n",
			want:    "body\n",
		},
		{
			name:    "second block untouched",
			content: "---\na: 1\n---\n---\nb: 2\n---\nbody\n",
			want:    "---\nb: 2\n---\nbody\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.content); got != tt.want {
				t.Errorf("Strip() = %q, want %q", got, tt.want)
			}
		})
	}
}
