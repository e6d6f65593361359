package database

import (
	"strings"

	"github.com/localnerve/studynotes/data"
	"gorm.io/gorm"
)

// Dedup grouping modes recorded in the Report.
const (
	DedupNoCase  = "nocase"
	DedupExact   = "exact"
	DedupSkipped = "skipped"
)

// Report describes what the schema initializer actually managed to do.
// Every step degrades rather than fails: the service must keep starting
// even when the store lacks a feature, at the cost of duplicate topics
// reappearing in the degraded case. Callers decide whether to log.
type Report struct {
	MigrateErr error
	SeedErrs   []error
	DedupMode  string
	DedupErr   error
	IndexErr   error
}

// Degraded reports whether any initializer step fell short.
func (r Report) Degraded() bool {
	return r.MigrateErr != nil || len(r.SeedErrs) > 0 ||
		r.DedupMode != DedupNoCase || r.IndexErr != nil
}

// Init applies the schema and static seed content idempotently, removes
// duplicate topics keeping the lowest id per case-insensitive title, and
// enforces a case-insensitive unique index on topic title. Safe to run
// on every startup.
func Init(db *gorm.DB) Report {
	var report Report

	report.MigrateErr = AutoMigrate(db)

	for _, stmt := range splitStatements(data.SeedSQL) {
		if err := db.Exec(stmt).Error; err != nil {
			report.SeedErrs = append(report.SeedErrs, err)
		}
	}

	// Remove duplicate topics (keep lowest id) based on case-insensitive title
	err := db.Exec(
		"DELETE FROM topics WHERE id NOT IN (SELECT MIN(id) FROM topics GROUP BY LOWER(title))",
	).Error
	if err == nil {
		report.DedupMode = DedupNoCase
	} else {
		// If LOWER isn't supported in grouping, fall back to exact grouping
		report.DedupErr = err
		err = db.Exec(
			"DELETE FROM topics WHERE id NOT IN (SELECT MIN(id) FROM topics GROUP BY title)",
		).Error
		if err == nil {
			report.DedupMode = DedupExact
		} else {
			report.DedupMode = DedupSkipped
			report.DedupErr = err
		}
	}

	// Case-insensitive unique index to prevent future duplicates
	report.IndexErr = db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_topics_title_nocase ON topics(title COLLATE NOCASE)",
	).Error

	return report
}

// splitStatements breaks a SQL script into single statements. The seed
// script carries no string literals containing semicolons followed by a
// newline, so a line-boundary split is sufficient.
func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";\n") {
		stmt := strings.TrimSpace(stripLineComments(part))
		if stmt == "" {
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func stripLineComments(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
