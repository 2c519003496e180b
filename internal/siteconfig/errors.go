package siteconfig

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const configLoadFailedCode = "CONFIG_LOAD_FAILED"

// ConfigLoadError reports a site or ad configuration file that could not be
// read or decoded. Loaders log it and fall back to defaults; it never reaches
// request handlers.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("siteconfig: load %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// categorised returns the go-errors form used for logging.
func (e *ConfigLoadError) categorised() *goerrors.Error {
	return goerrors.Wrap(e, goerrors.CategoryInternal, "configuration file could not be loaded").
		WithTextCode(configLoadFailedCode).
		WithMetadata(map[string]any{"path": e.Path})
}
