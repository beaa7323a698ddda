package format

import (
	"encoding/json"

	"github.com/computeruseprotocol/go-sdk/internal/model"
)

// EnvelopeJSON serializes the envelope as UTF-8 JSON. Transient pruning
// markers are excluded by the node struct tags.
func EnvelopeJSON(env *model.Envelope) ([]byte, error) {
	return json.Marshal(env)
}

// EnvelopeJSONIndent is EnvelopeJSON with two-space indentation, for
// file output meant to be read by humans.
func EnvelopeJSONIndent(env *model.Envelope) ([]byte, error) {
	return json.MarshalIndent(env, "", "  ")
}
