package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// RunMigrations executes every *.up.sql file in dir, ordered by file
// name. Statements are split on semicolons; statements against objects
// that already exist are logged and skipped so the runner stays
// re-runnable against a live schema.
func RunMigrations(db *sqlx.DB, dir string, log *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		log.Info("applying migration", zap.String("file", name))
		for _, stmt := range splitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				if isAlreadyExists(err) {
					log.Warn("object already exists, skipping statement",
						zap.String("file", name), zap.Error(err))
					continue
				}
				return fmt.Errorf("migration %s failed: %w", name, err)
			}
		}
	}

	return nil
}

func splitStatements(sql string) []string {
	var stmts []string
	for _, raw := range strings.Split(sql, ";") {
		var lines []string
		for _, line := range strings.Split(raw, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt == "" {
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// isAlreadyExists reports whether err is Oracle's "name is already used
// by an existing object" (ORA-00955) or "such column list already
// indexed" (ORA-01408).
func isAlreadyExists(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "ORA-00955") || strings.Contains(msg, "ORA-01408")
}
