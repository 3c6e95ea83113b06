package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// timeLayout is the storage format for timestamps.
const timeLayout = time.RFC3339Nano

// encodeParams serializes params for a TEXT column. nil encodes as "{}".
func encodeParams(p types.Params) (string, error) {
	if p == nil {
		p = types.Params{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding params: %w", err)
	}
	return string(data), nil
}

// decodeParams parses a params column. String and bool values round-trip
// unchanged; those are the only declared parameter types.
func decodeParams(raw string) (types.Params, error) {
	p := types.Params{}
	if raw == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	return p, nil
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", raw, err)
	}
	return t, nil
}
