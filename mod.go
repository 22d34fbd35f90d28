// Package databind defines a data-model serialization framework: it converts
// between a structural type description and a JSON-like value tree, in both
// directions.
//
// The engine is split between the leaf models and the conversion core:
//   - types contains the type description model
//   - value contains the untyped value tree
//   - settings contains the typed settings and their resolution rules
//   - convert contains the context, the converter contract and the driver
//   - convert/registry contains the ordered converter registry
//   - convert/builtin contains one converter per type description variant
//   - format contains the byte-syntax adapters (JSON, YAML, TOML)
package databind

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logout = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(zerolog.WarnLevel)
