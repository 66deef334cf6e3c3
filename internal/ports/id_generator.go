package ports

// IDGenerator produces unique identifiers (transactions, patrons).
type IDGenerator interface {
	New() (string, error)
}
