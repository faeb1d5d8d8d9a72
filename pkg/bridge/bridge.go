// Package bridge turns a run request into the config file path the engine
// reads. In-memory documents are written to a temporary YAML file that the
// caller must Release once the run is over.
package bridge

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/orgrun/pkg/document"
	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/logging"
	"github.com/arthur-debert/orgrun/pkg/types"
)

const tempPattern = "orgrun-config-*.yaml"

// Resolved is the config path chosen for a run.
type Resolved struct {
	// Path is empty when the engine should discover its own config
	Path string
	// Temporary marks a file created by the bridge
	Temporary bool
}

// Bridge writes temporary config files on an afero filesystem.
type Bridge struct {
	fs     afero.Fs
	dir    string
	logger zerolog.Logger
}

// New creates a bridge writing into dir ("" for the OS temp dir).
func New(fs afero.Fs, dir string) *Bridge {
	return &Bridge{
		fs:     fs,
		dir:    dir,
		logger: logging.GetLogger("bridge"),
	}
}

// NewOS creates a bridge on the real filesystem.
func NewOS() *Bridge {
	return New(afero.NewOsFs(), "")
}

// Resolve picks the config path for req. A ConfigPath is returned as-is,
// without checking it exists. ConfigData is validated and written to a new
// temporary file. Errors carry ErrInvalidConfig or ErrTempFileIO.
func (b *Bridge) Resolve(req types.RunRequest) (Resolved, error) {
	if req.ConfigPath != "" {
		if req.ConfigData != nil {
			b.logger.Warn().Str("path", req.ConfigPath).Msg("Both config path and config data given, using path")
		}
		return Resolved{Path: req.ConfigPath}, nil
	}
	if !req.HasConfigData() {
		return Resolved{}, nil
	}

	if err := document.Validate(req.ConfigData); err != nil {
		return Resolved{}, err
	}

	f, err := afero.TempFile(b.fs, b.dir, tempPattern)
	if err != nil {
		return Resolved{}, errors.Wrap(err, errors.ErrTempFileIO, "failed to create temporary config file")
	}
	path := f.Name()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	err = enc.Encode(req.ConfigData)
	if err == nil {
		err = enc.Close()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = b.fs.Remove(path)
		return Resolved{}, errors.Wrap(err, errors.ErrTempFileIO, "failed to write temporary config file").
			WithDetail("path", path)
	}

	b.logger.Debug().Str("path", path).Msg("Wrote temporary config file")
	return Resolved{Path: path, Temporary: true}, nil
}

// Release deletes a temporary file created by Resolve. Non-temporary
// results are left alone. A file that is already gone is not an error.
func (b *Bridge) Release(res Resolved) error {
	if !res.Temporary || res.Path == "" {
		return nil
	}
	if err := b.fs.Remove(res.Path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrTempFileIO, "failed to delete temporary config file").
			WithDetail("path", res.Path)
	}
	return nil
}
