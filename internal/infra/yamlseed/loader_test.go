package yamlseed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/shelf/internal/domain"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadSeed(t *testing.T) {
	p := writeSeed(t, `
books:
  - title: Dune
    author: Frank Herbert
    isbn: "111"
    quantity: 2
  - title: " Emma "
    author: Jane Austen
    isbn: "222"
patrons:
  - name: Ann
    id: p1
    contact: ann@example.com
  - name: Bob
`)

	seed, err := NewLoader().LoadSeed(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed.Source != p {
		t.Errorf("expected source %q, got %q", p, seed.Source)
	}
	if len(seed.Books) != 2 || len(seed.Patrons) != 2 {
		t.Fatalf("unexpected seed sizes: %d books, %d patrons", len(seed.Books), len(seed.Patrons))
	}
	if seed.Books[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", seed.Books[0].Quantity)
	}
	if seed.Books[1].Title != "Emma" || seed.Books[1].Quantity != 1 {
		t.Errorf("expected trimmed title and default quantity, got %+v", seed.Books[1])
	}
	if seed.Patrons[1].ID != "" {
		t.Errorf("expected empty id to be kept for generation, got %q", seed.Patrons[1].ID)
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestLoadSeed_InvalidYAML(t *testing.T) {
	p := writeSeed(t, "books: [\n")
	_, err := NewLoader().LoadSeed(p)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestMapSeed_NamesBadField(t *testing.T) {
	neg := -1
	cases := []struct {
		seed YAMLSeed
		want string
	}{
		{YAMLSeed{Books: []YAMLBook{{ISBN: "1"}}}, "books[0].title"},
		{YAMLSeed{Books: []YAMLBook{{Title: "t"}}}, "books[0].isbn"},
		{YAMLSeed{Books: []YAMLBook{{Title: "t", ISBN: "1", Quantity: &neg}}}, "books[0].quantity"},
		{YAMLSeed{Patrons: []YAMLPatron{{ID: "p1"}}}, "patrons[0].name"},
	}
	for _, c := range cases {
		_, err := MapSeed("seed.yaml", c.seed)
		if err == nil {
			t.Fatalf("expected error for %s", c.want)
		}
		if !domain.IsKind(err, domain.KindInvalidConfig) || !strings.Contains(err.Error(), c.want) {
			t.Errorf("expected invalid_config naming %s, got %v", c.want, err)
		}
	}
}
