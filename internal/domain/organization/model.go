package organization

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/types"
)

// Organization is a property-management company. Its delivery config selects
// how voucher reminders reach tenants; a nil config is a valid state meaning
// the organization has not enabled delivery yet.
type Organization struct {
	// ID is the unique identifier for the organization
	ID string `db:"id" json:"id"`

	// Name is the display name used in rendered messages
	Name string `db:"name" json:"name"`

	// DeliveryConfig selects the delivery provider; nil means none configured
	DeliveryConfig *DeliveryConfig `db:"delivery_config" json:"delivery_config"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DeliveryConfig is the provider selection plus provider-specific settings.
type DeliveryConfig struct {
	Provider types.DeliveryProvider `json:"provider"`
	// Webhook is the batch endpoint URL; required for the N8N provider
	Webhook string `json:"webhook,omitempty"`
}

func (c *DeliveryConfig) Validate() error {
	if err := c.Provider.Validate(); err != nil {
		return err
	}
	if c.Provider == types.DeliveryProviderN8N && c.Webhook == "" {
		return ierr.NewError("webhook url missing for n8n provider").
			WithHint("Configure the organization's n8n webhook URL").
			Mark(ierr.ErrConfigurationMissing)
	}
	return nil
}

// Value implements driver.Valuer for jsonb storage
func (c DeliveryConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for jsonb storage
func (c *DeliveryConfig) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return ierr.NewError("unexpected type for delivery config").
			Mark(ierr.ErrDatabase)
	}
	return json.Unmarshal(b, c)
}
