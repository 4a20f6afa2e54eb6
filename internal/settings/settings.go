// Package settings persists client preferences between runs in a local
// sqlite file.
package settings

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

// Profile is the saved state for one account on one server cluster.
type Profile struct {
	gorm.Model

	Username string `gorm:"uniqueIndex"`

	// Password is stored only when RememberPassword is set.
	RememberPassword bool
	Password         string

	// LastServer is the name of the character server picked most
	// recently, preselected on the next login.
	LastServer string
	// LastSlot is the roster slot entered most recently.
	LastSlot uint8
}

// Initialize opens the settings database, creating it if necessary.
func Initialize(filename string) error {
	var err error
	db, err = gorm.Open(sqlite.Open(filename), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open settings database: %w", err)
	}
	return db.AutoMigrate(&Profile{})
}

func Shutdown() error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FindProfile returns the saved profile for an account, or nil when the
// account has never logged in from this client.
func FindProfile(username string) (*Profile, error) {
	var profile Profile
	err := db.Where("username = ?", username).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// RecentProfile returns the most recently updated profile, or nil when
// none exist.
func RecentProfile() (*Profile, error) {
	var profile Profile
	err := db.Order("updated_at desc").First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// SaveProfile inserts or updates the profile for its username. The
// stored password is cleared unless RememberPassword is set.
func SaveProfile(p *Profile) error {
	if !p.RememberPassword {
		p.Password = ""
	}
	existing, err := FindProfile(p.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	return db.Save(p).Error
}
