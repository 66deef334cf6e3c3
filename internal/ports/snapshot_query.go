package ports

// SnapshotQuery evaluates an expression against the persisted snapshot document.
type SnapshotQuery interface {
	Query(expr string) (any, error)
}
