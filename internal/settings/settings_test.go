package settings

import (
	"testing"

	"github.com/go-test/deep"
)

func initTestDatabase(t *testing.T) {
	t.Helper()
	if err := Initialize(":memory:"); err != nil {
		t.Fatalf("failed to initialize settings database: %v", err)
	}
	t.Cleanup(func() {
		if err := Shutdown(); err != nil {
			t.Errorf("failed to close settings database: %v", err)
		}
	})
}

func TestFindProfileMissing(t *testing.T) {
	initTestDatabase(t)

	profile, err := FindProfile("nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, expected nil for an unknown account", profile)
	}
}

func TestSaveAndFindProfile(t *testing.T) {
	initTestDatabase(t)

	saved := &Profile{
		Username:         "player",
		RememberPassword: true,
		Password:         "secret",
		LastServer:       "Chaos",
		LastSlot:         2,
	}
	if err := SaveProfile(saved); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	found, err := FindProfile("player")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("saved profile not found")
	}
	found.Model = saved.Model
	if diff := deep.Equal(saved, found); diff != nil {
		t.Error(diff)
	}
}

func TestSaveProfileUpdatesExisting(t *testing.T) {
	initTestDatabase(t)

	if err := SaveProfile(&Profile{Username: "player", LastServer: "Chaos"}); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	if err := SaveProfile(&Profile{Username: "player", LastServer: "Loki", LastSlot: 1}); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	found, err := FindProfile("player")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.LastServer != "Loki" || found.LastSlot != 1 {
		t.Errorf("profile = %+v, expected the updated server and slot", found)
	}

	var count int64
	db.Model(&Profile{}).Count(&count)
	if count != 1 {
		t.Errorf("%d profiles stored, expected the update to reuse the row", count)
	}
}

func TestSaveProfileDropsForgottenPassword(t *testing.T) {
	initTestDatabase(t)

	err := SaveProfile(&Profile{Username: "player", RememberPassword: false, Password: "secret"})
	if err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	found, err := FindProfile("player")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Password != "" {
		t.Error("password persisted without RememberPassword")
	}
}
