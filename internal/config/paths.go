package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".convoscore"

// Paths holds resolved filesystem paths for convoscore data.
type Paths struct {
	Base   string // ~/.convoscore
	Config string // ~/.convoscore/config.yaml
	DB     string // ~/.convoscore/data/convoscore.db
	Data   string // ~/.convoscore/data
}

// ResolvePaths computes all standard paths from the home directory.
// If CONVOSCORE_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("CONVOSCORE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		DB:     filepath.Join(base, "data", "convoscore.db"),
		Data:   filepath.Join(base, "data"),
	}, nil
}

// EnsureDirs creates all standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Data} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
