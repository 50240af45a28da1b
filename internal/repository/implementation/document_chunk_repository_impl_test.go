package implementation

import (
	"context"
	"strings"
	"testing"

	"course-copilot-be/internal/repository/contract"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds queries without touching a database and records the last
// generated SQL.
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var captured string
	err = db.Callback().Query().After("gorm:query").Register("test:capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	return db, &captured
}

func TestSearchSimilarWithScoreOrdersDeterministically(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewDocumentChunkRepository(db)

	_, err := repo.SearchSimilarWithScore(context.Background(), []float32{0.1, 0.2}, 10, contract.SearchScope{
		Course:  "Algoritmos",
		Cycle:   "20241",
		Section: "G1",
	}, 0.5)
	require.NoError(t, err)

	// Ties on similarity must be broken inside the query; otherwise LIMIT
	// can cut an arbitrary subset of equal-score chunks.
	require.Contains(t, *captured,
		"ORDER BY similarity DESC, documents.created_at DESC, document_chunks.chunk_index ASC")
	require.Contains(t, *captured, "LIMIT")
}

func TestSearchSimilarWithScoreFiltersScopeAndStatus(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewDocumentChunkRepository(db)

	_, err := repo.SearchSimilarWithScore(context.Background(), []float32{0.1}, 5, contract.SearchScope{
		Course:  "Base de Datos",
		Cycle:   "20242",
		Section: "G2",
	}, 0.5)
	require.NoError(t, err)

	sql := *captured
	for _, clause := range []string{
		"documents.course = ",
		"documents.cycle = ",
		"documents.section = ",
		"documents.status = ",
		"document_chunks.deleted_at IS NULL",
	} {
		if !strings.Contains(sql, clause) {
			t.Errorf("query missing clause %q:\n%s", clause, sql)
		}
	}
}
