package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var (
	nameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]+`)

	now = time.Now
)

// CreateSQLMigration creates a goose SQL migration file:
//
//	<dir>/<YYYYMMDDHHMMSS>_<name>.sql
//
// The version moves forward a second at a time until it is unused in dir, so
// two migrations created in the same second still validate.
func CreateSQLMigration(dir string, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	safe := sanitizeName(name)
	if safe == "" {
		return "", fmt.Errorf("name %q results in empty sanitized filename", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	at := now().UTC()
	for {
		taken, err := filepath.Glob(filepath.Join(dir, at.Format(versionLayout)+"_*.sql"))
		if err != nil {
			return "", fmt.Errorf("scan %q: %w", dir, err)
		}
		if len(taken) == 0 {
			break
		}
		at = at.Add(time.Second)
	}

	fullpath := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", at.Format(versionLayout), safe))
	if err := os.WriteFile(fullpath, []byte(migrationTemplate(safe)), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}
	return fullpath, nil
}

func sanitizeName(name string) string {
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = strings.ReplaceAll(safe, " ", "_")
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}

// migrationTemplate is the skeleton for catalog and pricelist schema changes.
// Enum types (applied_on, compute_price, price_base) must be altered outside
// a transaction block, hence the NO TRANSACTION hint.
func migrationTemplate(name string) string {
	return fmt.Sprintf(`-- +goose Up
-- %[1]s
-- add "-- +goose NO TRANSACTION" above when altering an enum type
-- +goose StatementBegin
-- +goose StatementEnd

-- +goose Down
-- rollback %[1]s
-- +goose StatementBegin
-- +goose StatementEnd
`, name)
}
