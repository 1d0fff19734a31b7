package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// UnassignedAreaName - район, который создаёт миграция 002
const UnassignedAreaName = "미지정"

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// GetAreaIDByName returns the internal ID for an area given its unique name
func GetAreaIDByName(db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM areas WHERE name = $1", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get area ID by name %q: %w", name, err)
	}
	return id, nil
}
