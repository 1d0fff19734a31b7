package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ApplyMigrations применяет *.up.sql по порядку имён. Схема написана через IF NOT EXISTS / ON CONFLICT,
// поэтому повторный прогон перед каждым тестом безопасен. После миграций проверяется, что
// зарезервированный район "미지정" на месте: без него AreaMatcher не стартует.
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", migrationsPath)
	}
	sort.Strings(files)

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filepath.Base(path), err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(path), err)
		}
	}

	var exists bool
	err = db.QueryRowContext(context.Background(),
		"SELECT EXISTS (SELECT 1 FROM areas WHERE name = $1)", UnassignedAreaName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check unassigned area: %w", err)
	}
	if !exists {
		return fmt.Errorf("migrations did not create the %q area", UnassignedAreaName)
	}

	return nil
}
