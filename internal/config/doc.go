// Package config loads, normalizes, and validates daspub configuration data.
//
// It supplies repository defaults for the archive file-name conventions,
// expands user paths (including tilde shortcuts), reads TOML files, and
// honours the DASPUB_ARCHIVE_PATHS environment fallback. The Config type is a
// plain value: callers derive the immutable model conventions from it once and
// pass them explicitly, so no package keeps configuration in globals.
//
// Always obtain settings through this package so downstream code receives
// expanded archive roots, lower-cased extension lists, and clear validation
// errors.
package config
