package commands

import (
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// parseID turns a request identifier into a UUID, reporting an empty value as
// required and anything else unparsable as invalid.
func parseID(paramName, raw string) (kernel.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(paramName)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if err = id.Validate(); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}
