package opts

import (
	"io"

	"github.com/spf13/afero"
	"github.com/walteh/logmigrate/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Config is resolved from defaults, the optional config file and flags
	Config *config.Config
	// Fs is the filesystem the project lives on
	Fs afero.Fs
	// Out receives the user-facing status lines
	Out io.Writer
}
