package api

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/trickle"
)

// ParseFrame maps one data-line payload to an event. It is total over its
// input: a text frame with empty content yields (nil, nil), and anything it
// cannot map yields an error wrapping [trickle.ErrMalformedFrame] that
// describes why. Both mean the frame carries no event and the stream should
// continue.
func ParseFrame(payload string) (trickle.Event, error) {
	var f apiFrame
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return nil, fmt.Errorf("%w: %v", trickle.ErrMalformedFrame, err)
	}
	switch f.Type {
	case frameText:
		if f.Content == "" {
			return nil, nil
		}
		return trickle.EventText{Delta: f.Content}, nil
	case frameDone:
		return trickle.EventDone{}, nil
	case frameError:
		return trickle.EventError{Message: f.Content}, nil
	case "":
		return nil, fmt.Errorf("%w: missing type", trickle.ErrMalformedFrame)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", trickle.ErrMalformedFrame, f.Type)
	}
}
