package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultTimezone is used for users that did not configure a timezone.
const DefaultTimezone = "America/Chicago"

// User represents a person tracking their finances. All other resources
// reference a user and are only ever read or written with an ownership
// filter on its ID.
type User struct {
	DefaultModel
	Name     string
	Timezone string // IANA timezone name, e.g. "Europe/Berlin"
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Timezone = strings.TrimSpace(u.Timezone)

	if u.Timezone != "" {
		if _, err := time.LoadLocation(u.Timezone); err != nil {
			return ErrTimezoneInvalid
		}
	}

	return nil
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(User)

	// BeforeSave only sees the loaded record here, so the incoming values
	// are trimmed and validated via the statement
	if tx.Statement.Changed("Name") {
		tx.Statement.SetColumn("Name", strings.TrimSpace(toSave.Name))
	}

	if tx.Statement.Changed("Timezone") {
		timezone := strings.TrimSpace(toSave.Timezone)
		if timezone != "" {
			if _, err := time.LoadLocation(timezone); err != nil {
				return ErrTimezoneInvalid
			}
		}

		tx.Statement.SetColumn("Timezone", timezone)
	}

	return nil
}

// Location returns the time.Location the user's local dates are computed
// in. Users without a configured timezone get the default.
func (u User) Location() *time.Location {
	tz := u.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}

	return loc
}

// Export returns all users on this instance.
func (User) Export() (json.RawMessage, error) {
	var users []User
	err := DB.Unscoped().Where(&User{}).Find(&users).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&users)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
