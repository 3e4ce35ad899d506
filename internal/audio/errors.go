package audio

import "errors"

// ErrDecode indicates a segment's audio payload could not be decoded.
var ErrDecode = errors.New("cannot decode audio")

// ErrNoAudio indicates that no segment in a non-empty batch produced
// usable audio.
var ErrNoAudio = errors.New("no audio produced")
