package domain

// Config represents the shelf configuration loaded from shelf.yaml.
type Config struct {
	DataFile string
	LoanDays int
	Output   string
}

// DefaultConfig provides sane defaults if shelf.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		DataFile: "data/library.json",
		LoanDays: 14,
		Output:   "pretty",
	}
}
