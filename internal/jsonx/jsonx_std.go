//go:build nojsonsimd

// Package jsonx picks the JSON codec used on the upstream wire. Build with
// -tags nojsonsimd to fall back to encoding/json.
package jsonx

import stdjson "encoding/json"

func Marshal(v any) ([]byte, error) {
	return stdjson.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return stdjson.Unmarshal(data, v)
}
