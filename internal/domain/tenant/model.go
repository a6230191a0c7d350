package tenant

import (
	"database/sql/driver"
	"encoding/json"

	ierr "github.com/realstatepro/billing/internal/errors"
)

// Tenant is the rent-paying occupant of a property. It is a read-only input
// to dispatch: the pipeline never creates or mutates tenants.
type Tenant struct {
	Name              string             `db:"name" json:"name"`
	Email             *string            `db:"email" json:"email"`
	Phone             *string            `db:"phone" json:"phone"`
	ContactPreference *ContactPreference `db:"contact_preference" json:"contact_preference"`
}

// ContactPreference records which channels the tenant has opted into.
// A nil preference means no choice was recorded; dispatch then defaults to
// email when an address exists.
type ContactPreference struct {
	Mail     bool `json:"mail"`
	WhatsApp bool `json:"whatsapp"`
}

// EmailAllowed reports whether the tenant may be contacted at the given
// email address under the recorded preference.
func (t *Tenant) EmailAllowed() bool {
	if t.Email == nil || *t.Email == "" {
		return false
	}
	if t.ContactPreference == nil {
		return true
	}
	return t.ContactPreference.Mail
}

// WhatsAppAllowed reports whether the tenant opted into messaging and has a
// phone number on record.
func (t *Tenant) WhatsAppAllowed() bool {
	if t.Phone == nil || *t.Phone == "" {
		return false
	}
	return t.ContactPreference != nil && t.ContactPreference.WhatsApp
}

// Value implements driver.Valuer for jsonb storage
func (p ContactPreference) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for jsonb storage
func (p *ContactPreference) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return ierr.NewError("unexpected type for contact preference").
			Mark(ierr.ErrDatabase)
	}
	return json.Unmarshal(b, p)
}
