package convert

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/kadegen/granolasync/internal/apperr"
)

// decodeLoosely decodes payload into out using a weakly-typed
// mapstructure decoder, tolerant of unknown fields and of the
// numeric/string duality the remote service uses for timestamps.
func decodeLoosely(payload map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindParse, "build transcript decoder", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return apperr.Wrap(apperr.KindParse, fmt.Sprintf("decode transcript payload: %v", err), err)
	}
	return nil
}
