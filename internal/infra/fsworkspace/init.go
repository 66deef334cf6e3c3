package fsworkspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

const (
	dataDir        = "data"
	gitignoreTitle = "# shelf"
)

var gitignoreEntries = []string{
	".shelf/",
	"data/*.tmp",
	"data/*.bak",
}

// Initializer scaffolds a workspace from the embedded templates.
type Initializer struct {
	templates fs.FS
}

func NewInitializer() *Initializer {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("fsworkspace: embedded templates: %v", err))
	}
	return &Initializer{templates: sub}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init lays out a workspace under spec.Root. force rewrites config templates but
// never an existing snapshot under data/.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	for _, d := range []string{dataDir, filepath.Join(".shelf", "logs")} {
		dir := filepath.Join(root, d)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
		}
	}

	if err := ensureGitignore(root); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindExecution, Path: root, Err: err}
	}

	return fs.WalkDir(i.templates, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if err := i.place(root, rel, force); err != nil {
			return &domain.OpError{Op: "fsworkspace.template", Kind: domain.KindExecution, Path: rel, Err: err}
		}
		return nil
	})
}

// place copies one template into root unless a file already exists there and may not be replaced.
func (i *Initializer) place(root, rel string, force bool) error {
	isData := strings.HasPrefix(rel, dataDir+"/")
	dst := filepath.Join(root, filepath.FromSlash(rel))

	if _, err := os.Stat(dst); err == nil && (!force || isData) {
		return nil
	}

	b, err := fs.ReadFile(i.templates, rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	var mode fs.FileMode = 0o644
	if isData {
		mode = 0o600
	}
	return os.WriteFile(dst, b, mode)
}

func ensureGitignore(root string) error {
	p := filepath.Join(root, ".gitignore")

	b, err := os.ReadFile(p)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	merged, changed := mergeGitignore(string(b))
	if !changed {
		return nil
	}
	return os.WriteFile(p, []byte(merged), 0o644)
}

// mergeGitignore appends the shelf block, adding only the lines not already present.
func mergeGitignore(existing string) (string, bool) {
	have := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			have[path.Clean(s)+suffixSlash(s)] = true
		}
	}

	var add []string
	for _, e := range gitignoreEntries {
		if !have[path.Clean(e)+suffixSlash(e)] {
			add = append(add, e)
		}
	}
	if len(add) == 0 {
		return existing, false
	}
	if !have[gitignoreTitle] {
		add = append([]string{gitignoreTitle}, add...)
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" {
		if !strings.HasSuffix(existing, "\n") {
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	out.WriteString(strings.Join(add, "\n"))
	out.WriteByte('\n')
	return out.String(), true
}

func suffixSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return "/"
	}
	return ""
}
