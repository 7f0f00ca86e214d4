package layer

import "github.com/pkg/errors"

// ErrInvalidConfiguration is returned when a neuron or layer is built or fed
// with a shape it cannot accept.
var ErrInvalidConfiguration = errors.New("invalid configuration")
