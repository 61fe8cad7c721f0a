package notify

import (
	"github.com/mitchellh/mapstructure"

	"github.com/sobande/taskrr/internal/models"
)

// DecodeData turns a payload's opaque data bag into the typed view. Bridges
// deliver every value as a string, so decoding is weakly typed; a bag that
// cannot be decoded at all yields the zero view rather than an error since
// classification falls back to text heuristics anyway.
func DecodeData(data map[string]any) models.PayloadData {
	var out models.PayloadData
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out
	}
	_ = decoder.Decode(data)
	return out
}
