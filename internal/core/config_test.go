package core

import (
	"testing"
)

func TestConfig_LoginServerAddress(t *testing.T) {
	cfg := &Config{
		LoginServerHost: "127.0.0.1",
		LoginServerPort: 6900,
	}

	addr := cfg.LoginServerAddress()
	expected := "127.0.0.1:6900"
	if addr != expected {
		t.Errorf("LoginServerAddress() want = %s, got = %s", expected, addr)
	}
}
