package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
	"gopkg.in/yaml.v3"
)

// ConfigFileName marks a workspace root.
const ConfigFileName = "shelf.yaml"

// LoadConfig loads shelf.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if s := strings.TrimSpace(y.Shelf.DataFile); s != "" {
		cfg.DataFile = s
	}
	if y.Shelf.LoanDays != nil {
		if *y.Shelf.LoanDays <= 0 {
			return cfg, invalidField(path, "shelf.loan_days", "must be greater than zero")
		}
		cfg.LoanDays = *y.Shelf.LoanDays
	}
	if s := strings.TrimSpace(y.Shelf.Output); s != "" {
		if s != "pretty" && s != "json" {
			return cfg, invalidField(path, "shelf.output", fmt.Sprintf("unsupported output %q (expected pretty|json)", s))
		}
		cfg.Output = s
	}

	return cfg, nil
}

type yamlConfig struct {
	Shelf struct {
		DataFile string `yaml:"data_file"`
		LoanDays *int   `yaml:"loan_days"`
		Output   string `yaml:"output"`
	} `yaml:"shelf"`
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
