package v1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// decode reads a Struct request into a typed request. Numbers arrive as
// doubles; integral values decode into int fields.
func decode(req *structpb.Struct, dst any) error {
	if req == nil {
		return nil
	}
	raw, err := protojson.Marshal(req)
	if err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}

// encode renders a response through its json tags into a Struct
func encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}
