package domain

// Seed is a batch of catalog and registry entries to import into a library.
type Seed struct {
	Source  string
	Books   []Book
	Patrons []Patron
}
