// Package limits clamps client supplied numeric bounds against configured ceilings.
package limits

import (
	"strconv"
	"strings"

	"github.com/station-locator/internal/pkg/errors"
)

// Clamp returns def when requested is empty, otherwise the parsed value capped at ceiling.
// A value that does not parse as an integer is an InvalidParameter error.
func Clamp(param, requested string, ceiling, def int) (int, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return def, nil
	}

	value, err := strconv.Atoi(requested)
	if err != nil {
		return 0, errors.ErrInvalidParameter.
			WithDetails(map[string]interface{}{"param": param, "value": requested}).
			Wrap(err)
	}

	return min(value, ceiling), nil
}

// Enforcer binds a ceiling and a default to a request parameter name.
type Enforcer struct {
	Param   string
	Ceiling int
	Default int
}

func (e Enforcer) Clamp(requested string) (int, error) {
	return Clamp(e.Param, requested, e.Ceiling, e.Default)
}
