package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex vchr_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_CONTRACT       = "contr"
	UUID_PREFIX_BILLING_CONFIG = "ccfg"
	UUID_PREFIX_VOUCHER        = "vchr"
	UUID_PREFIX_ORGANIZATION   = "org"
	UUID_PREFIX_PROPERTY       = "prop"
	UUID_PREFIX_TENANT         = "tnt"
	UUID_PREFIX_USER           = "user"
)
