package docs

import (
	_ "embed"
	"encoding/json"

	"github.com/mdobak/go-xerrors"
)

//go:embed endpoints.json
var endpointsJSON []byte

// Endpoints decodes the embedded description of every API endpoint, keyed by
// "METHOD /path".
func Endpoints() (map[string]any, error) {
	var endpoints map[string]any
	if err := json.Unmarshal(endpointsJSON, &endpoints); err != nil {
		return nil, xerrors.Newf("docs: decoding endpoints.json: %w", err)
	}
	return endpoints, nil
}
