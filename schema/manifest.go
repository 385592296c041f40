package schema

import (
	"github.com/invopop/jsonschema"

	"github.com/grovetools/plantview/logging"
)

// Extensions maps the top-level config sections owned by other packages to
// the schema of that section. They are merged into the core schema by
// Compose.
var Extensions = map[string]func() *jsonschema.Schema{
	"logging": logging.Reflect,
}
