package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var migrationNameRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks every SQL migration in dir for a well-formed
// timestamped filename, a unique version, and both goose direction markers.
// An empty directory passes.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	versions := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		if err := checkMigrationFile(dir, entry.Name(), versions); err != nil {
			return err
		}
	}
	return nil
}

func checkMigrationFile(dir, name string, versions map[string]string) error {
	match := migrationNameRe.FindStringSubmatch(name)
	if match == nil {
		return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
	}

	version := match[1]
	if prev, dup := versions[version]; dup {
		return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
	}
	versions[version] = name

	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read file %q: %w", name, err)
	}

	content := string(raw)
	for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
		if !strings.Contains(content, marker) {
			return fmt.Errorf("migration %q missing %q", name, marker)
		}
	}
	return nil
}
