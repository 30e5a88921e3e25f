//go:build !nojsonsimd

// Package jsonx picks the JSON codec used on the upstream wire. Build with
// -tags nojsonsimd to fall back to encoding/json.
package jsonx

import "github.com/bytedance/sonic"

var fastJSON = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return fastJSON.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return fastJSON.Unmarshal(data, v)
}
