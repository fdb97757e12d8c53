package documents

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studocs/studocs-backend/pkg/db/models"
	"github.com/studocs/studocs-backend/pkg/enums"
)

func setupDocumentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:documents_repo_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  level TEXT NOT NULL,
  file_url TEXT NOT NULL,
  filename TEXT NOT NULL,
  file_type TEXT NOT NULL,
  uploaded_by_id TEXT NOT NULL,
  uploaded_by_name TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	t.Cleanup(func() {
		_ = db.Exec("DELETE FROM documents").Error
	})

	return db
}

func seedDocument(t *testing.T, db *gorm.DB, repo *Repository, title string, level enums.Level, createdAt time.Time) *models.Document {
	t.Helper()

	doc, err := repo.CreateWithTx(context.Background(), db, &models.Document{
		Title:          title,
		Level:          level,
		FileURL:        "https://files.example.com/" + title + ".pdf",
		Filename:       title + ".pdf",
		FileType:       "application/pdf",
		UploadedByID:   uuid.New(),
		UploadedByName: "Seeder",
		CreatedAt:      createdAt,
	})
	require.NoError(t, err)
	return doc
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	db := setupDocumentsTestDB(t)
	repo := NewRepository(db)

	doc, err := repo.CreateWithTx(context.Background(), db, &models.Document{
		Title:          "Algebra notes",
		Level:          enums.LevelL1,
		FileURL:        "https://files.example.com/algebra.pdf",
		Filename:       "algebra.pdf",
		FileType:       "application/pdf",
		UploadedByID:   uuid.New(),
		UploadedByName: "Alice",
	})
	require.NoError(t, err)
	assert.NotZero(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestCreateRollbackDiscardsRow(t *testing.T) {
	db := setupDocumentsTestDB(t)
	repo := NewRepository(db)

	tx := db.Begin()
	require.NoError(t, tx.Error)

	_, err := repo.CreateWithTx(context.Background(), tx, &models.Document{
		Title:          "Abandoned upload",
		Level:          enums.LevelL1,
		FileURL:        "https://files.example.com/abandoned.pdf",
		Filename:       "abandoned.pdf",
		FileType:       "application/pdf",
		UploadedByID:   uuid.New(),
		UploadedByName: "Nobody",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback().Error)

	rows, total, err := repo.List(context.Background(), listQuery{offset: 0, limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows, "a rolled-back insert must leave no document behind")
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := setupDocumentsTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedDocument(t, db, repo, "oldest", enums.LevelL1, base)
	seedDocument(t, db, repo, "middle", enums.LevelL2, base.Add(time.Hour))
	seedDocument(t, db, repo, "newest", enums.LevelL3, base.Add(2*time.Hour))

	rows, total, err := repo.List(context.Background(), listQuery{offset: 0, limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)
	assert.Equal(t, "newest", rows[0].Title)
	assert.Equal(t, "oldest", rows[2].Title)
}

func TestListFiltersByLevel(t *testing.T) {
	db := setupDocumentsTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedDocument(t, db, repo, "l1-a", enums.LevelL1, base)
	seedDocument(t, db, repo, "m2-a", enums.LevelM2, base.Add(time.Minute))
	seedDocument(t, db, repo, "l1-b", enums.LevelL1, base.Add(2*time.Minute))

	level := enums.LevelL1
	rows, total, err := repo.List(context.Background(), listQuery{level: &level, offset: 0, limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total, "count must honor the same filter as the page")
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, enums.LevelL1, row.Level)
	}
}

func TestListPagination(t *testing.T) {
	db := setupDocumentsTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedDocument(t, db, repo, string(rune('a'+i)), enums.LevelM1, base.Add(time.Duration(i)*time.Minute))
	}

	first, total, err := repo.List(context.Background(), listQuery{offset: 0, limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, first, 2)

	second, _, err := repo.List(context.Background(), listQuery{offset: 2, limit: 2})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.NotEqual(t, first[0].ID, second[0].ID)

	last, _, err := repo.List(context.Background(), listQuery{offset: 4, limit: 2})
	require.NoError(t, err)
	assert.Len(t, last, 1)

	beyond, _, err := repo.List(context.Background(), listQuery{offset: 10, limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond, "pages past the end are empty, not an error")
}
