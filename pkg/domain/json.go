package domain

import (
	"bytes"
	"encoding/json"
)

func unmarshalNumber(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}
