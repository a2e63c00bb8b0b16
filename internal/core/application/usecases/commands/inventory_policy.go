package commands

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// InventoryPolicy decides when a dispatch takes stock from the shop.
type InventoryPolicy string

const (
	// InventoryStrict decrements inside the dispatch transaction; a shortfall
	// aborts the dispatch.
	InventoryStrict InventoryPolicy = "strict"
	// InventoryBestEffort decrements after commit and only logs shortfalls.
	InventoryBestEffort InventoryPolicy = "best_effort"
)

func ParseInventoryPolicy(s string) (InventoryPolicy, error) {
	switch p := InventoryPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case InventoryStrict, InventoryBestEffort:
		return p, nil
	case "":
		return InventoryStrict, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("inventoryPolicy", fmt.Errorf("%q is not a known policy", s))
	}
}
