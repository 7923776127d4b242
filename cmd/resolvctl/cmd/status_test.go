package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/munichmade/resolvctl/internal/registry"
)

func TestGetDomainStatus(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New("testapp", registry.WithDir(dir))

	if err := reg.Register(registry.NewEntry("app.local", "127.0.0.1", 5553), os.Getpid()); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterPermanent(registry.NewEntry("static.local", "127.0.0.1", 5553)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "foreign.local"), []byte("nameserver 8.8.8.8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		domain    string
		wantState string
	}{
		{"app.local", "registered"},
		{"static.local", "registered"},
		{"foreign.local", "foreign"},
		{"missing.local", "absent"},
	}

	for _, tt := range tests {
		s := getDomainStatus(reg, tt.domain)
		if s.State != tt.wantState {
			t.Errorf("getDomainStatus(%q).State = %q, want %q", tt.domain, s.State, tt.wantState)
		}
	}

	s := getDomainStatus(reg, "app.local")
	if s.PID != os.Getpid() || !s.PIDAlive || s.Permanent {
		t.Errorf("app.local status = %+v, want live transient entry for this process", s)
	}

	s = getDomainStatus(reg, "static.local")
	if !s.Permanent || s.PID != 0 {
		t.Errorf("static.local status = %+v, want permanent entry", s)
	}
}
