// Package models defines data structures used across the application.
// File: models/configuration.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Configuration display types.
const (
	ConfigTypeCalendar = "calendar"
	ConfigTypeForm     = "form"
)

// ----------------------- payment settings -----------------------

// CheckSettings describes the pay-by-check option shown on a public form.
type CheckSettings struct {
	Enabled    bool   `json:"enabled"`
	PayableTo  string `json:"payableTo"`
	FullAmount string `json:"fullAmount"`
	HalfAmount string `json:"halfAmount"`
}

// CardSettings describes the pay-by-card option shown on a public form.
type CardSettings struct {
	Enabled          bool   `json:"enabled"`
	FullKiddushPrice string `json:"fullKiddushPrice"`
	FullKiddushLink  string `json:"fullKiddushLink"`
	HalfKiddushPrice string `json:"halfKiddushPrice"`
	HalfKiddushLink  string `json:"halfKiddushLink"`
}

// PaymentSettings groups the payment options of a form configuration.
// Stored as a JSON column.
type PaymentSettings struct {
	Check CheckSettings `json:"check"`
	Card  CardSettings  `json:"card"`
}

// Value implements driver.Valuer so sqlx can persist the nested settings.
func (p PaymentSettings) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (p *PaymentSettings) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = PaymentSettings{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PaymentSettings", src)
	}
}

// ----------------------- display settings -----------------------

// DisplaySettings holds cosmetic options for the public display.
type DisplaySettings struct {
	Color string `json:"color"`
	Font  string `json:"font"`
}

// Value implements driver.Valuer.
func (d DisplaySettings) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *DisplaySettings) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = DisplaySettings{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into DisplaySettings", src)
	}
}

// ----------------------- configuration model -----------------------

// Configuration is an admin-owned definition of one public-facing display,
// either a live calendar or a sponsorship form.
type Configuration struct {
	ID                string          `db:"id" json:"id"`
	UserID            string          `db:"user_id" json:"userId"`
	Type              string          `db:"type" json:"type"`
	Title             string          `db:"title" json:"title"`
	NotificationEmail string          `db:"notification_email" json:"notificationEmail"`
	PaymentSettings   PaymentSettings `db:"payment_settings" json:"paymentSettings"`
	DisplaySettings   DisplaySettings `db:"display_settings" json:"displaySettings"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
}

// ----------------------- user model -----------------------

// User is an admin account owning configurations, events and contacts.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Congregation string    `db:"congregation" json:"congregation"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
