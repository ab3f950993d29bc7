package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akamai/AkamaiOPEN-edgegrid-golang/v10/pkg/edgegrid"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/logger"
)

// newAPIClient builds a signed Domain Validation API client from the
// credential flags
func newAPIClient(flags *APIFlags) (*dvapi.Client, error) {
	path := flags.EdgercPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		path = filepath.Join(home, ".edgerc")
	}

	cfg, err := edgegrid.New(
		edgegrid.WithFile(path),
		edgegrid.WithSection(flags.Section),
	)
	if err != nil {
		return nil, fmt.Errorf("loading credentials from %s: %w", path, err)
	}

	// Flag wins over any account_key in the credentials file
	switchKey := flags.AccountSwitchKey
	if switchKey == "" {
		switchKey = cfg.AccountKey
	}

	log := logger.NewDefaultLogger()
	return dvapi.NewClient(cfg.Host, cfg,
		dvapi.WithAccountSwitchKey(switchKey),
		dvapi.WithLogger(log),
	), nil
}
