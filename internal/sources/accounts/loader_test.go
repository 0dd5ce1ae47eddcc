package accounts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeFile(t, `
users:
  - username: root
    password: rootpass
    role: admin
  - username: guest
    password: guestpass
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Users) != 2 {
		t.Fatalf("Load() returned %d users, want 2", len(file.Users))
	}
	if file.Users[0].Role != "admin" || file.Users[1].Role != "" {
		t.Errorf("unexpected roles: %+v", file.Users)
	}
}

func TestLoaderExpandsTemplateVariables(t *testing.T) {
	path := writeFile(t, `
users:
  - username: root
    password: "{{ HOMEDECK_VAR_ROOT_PASSWORD }}"
    role: admin
`)

	l := NewLoader(path)
	l.lookup = func(key string) (string, bool) {
		if key == "HOMEDECK_VAR_ROOT_PASSWORD" {
			return "s3cr3t!", true
		}
		return "", false
	}

	file, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := file.Users[0].Password; got != "s3cr3t!" {
		t.Errorf("password = %q, want s3cr3t!", got)
	}
}

func TestLoaderMissingVariable(t *testing.T) {
	path := writeFile(t, `
users:
  - username: root
    password: "{{HOMEDECK_VAR_NOT_SET}}"
`)

	l := NewLoader(path)
	l.lookup = func(string) (string, bool) { return "", false }

	_, err := l.Load()
	if err == nil || !strings.Contains(err.Error(), "HOMEDECK_VAR_NOT_SET") {
		t.Errorf("Load() error = %v, want mention of HOMEDECK_VAR_NOT_SET", err)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/accounts.yaml").Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderInvalidYAML(t *testing.T) {
	path := writeFile(t, "users: [unterminated")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() with invalid yaml should return error")
	}
}
