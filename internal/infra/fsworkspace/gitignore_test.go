package fsworkspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergeGitignore(t *testing.T) {
	cases := []struct {
		name        string
		existing    string
		want        string
		wantChanged bool
	}{
		{
			name:        "empty file gets full block",
			existing:    "",
			want:        "# shelf\n.shelf/\ndata/*.tmp\ndata/*.bak\n",
			wantChanged: true,
		},
		{
			name:        "header present, only missing lines appended",
			existing:    "node_modules/\n# shelf\n.shelf/",
			want:        "node_modules/\n# shelf\n.shelf/\n\ndata/*.tmp\ndata/*.bak\n",
			wantChanged: true,
		},
		{
			name:        "complete file untouched",
			existing:    "# shelf\n.shelf/\ndata/*.tmp\ndata/*.bak\n",
			want:        "# shelf\n.shelf/\ndata/*.tmp\ndata/*.bak\n",
			wantChanged: false,
		},
		{
			name:        "whitespace tolerated and order kept",
			existing:    "  .shelf/  \nbin/\n",
			want:        "  .shelf/  \nbin/\n\n# shelf\ndata/*.tmp\ndata/*.bak\n",
			wantChanged: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := mergeGitignore(tc.existing)
			if changed != tc.wantChanged {
				t.Fatalf("changed=%v, want %v", changed, tc.wantChanged)
			}
			if got != tc.want {
				t.Fatalf("merge mismatch:\n got %q\nwant %q", got, tc.want)
			}
		})
	}
}

func TestEnsureGitignore_WritesOnlyWhenChanged(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".gitignore")

	if err := ensureGitignore(dir); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	first, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	old := mustModTime(t, p)
	if err := os.Chtimes(p, old.Add(-3600e9), old.Add(-3600e9)); err != nil {
		t.Fatal(err)
	}
	if err := ensureGitignore(dir); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	second, _ := os.ReadFile(p)
	if string(first) != string(second) {
		t.Fatalf("content changed on second run:\n%s", second)
	}
	if !mustModTime(t, p).Equal(old.Add(-3600e9)) {
		t.Fatal("expected no rewrite when the block is already complete")
	}
}
