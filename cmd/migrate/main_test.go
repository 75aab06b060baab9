package main

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlx.NewDb(sqlDB, "sqlmock"), mock
}

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE product (id int);
ALTER TABLE product ADD COLUMN name text;

-- +migrate Down
DROP TABLE product;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE product")
		assert.Contains(t, up, "ALTER TABLE product")
		assert.NotContains(t, up, "DROP TABLE product")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE product")
		assert.NotContains(t, down, "CREATE TABLE product")
	})
}

func TestRunMigrationsUp(t *testing.T) {
	t.Run("Applies New Migration", func(t *testing.T) {
		database, mock := newMockDB(t)
		file := writeMigration(t, t.TempDir(), "0001_init.sql", "-- +migrate Up\nCREATE TABLE test (id int);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE test").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, runMigrationsUp(database, []string{file}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips Applied Migration", func(t *testing.T) {
		database, mock := newMockDB(t)
		file := writeMigration(t, t.TempDir(), "0001_init.sql", "-- +migrate Up\nCREATE TABLE test (id int);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, runMigrationsUp(database, []string{file}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure Rolls Back", func(t *testing.T) {
		database, mock := newMockDB(t)
		file := writeMigration(t, t.TempDir(), "0001_init.sql", "-- +migrate Up\nCREATE TABLE test (id int);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE test").WillReturnError(errors.New("syntax error"))
		mock.ExpectRollback()

		err := runMigrationsUp(database, []string{file})
		assert.ErrorContains(t, err, "0001_init.sql")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunMigrationsDown(t *testing.T) {
	t.Run("Rolls Back Latest", func(t *testing.T) {
		database, mock := newMockDB(t)
		file := writeMigration(t, t.TempDir(), "0002_more.sql", "-- +migrate Up\nCREATE TABLE more (id int);\n-- +migrate Down\nDROP TABLE more;")

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0002_more.sql"))
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE more").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("0002_more.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, runMigrationsDown(database, []string{file}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing Applied", func(t *testing.T) {
		database, mock := newMockDB(t)
		mock.ExpectQuery("SELECT version FROM schema_migrations").WillReturnError(sql.ErrNoRows)

		assert.NoError(t, runMigrationsDown(database, nil))
	})

	t.Run("Missing File", func(t *testing.T) {
		database, mock := newMockDB(t)
		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0009_gone.sql"))

		assert.ErrorContains(t, runMigrationsDown(database, nil), "0009_gone.sql")
	})
}

func TestRun(t *testing.T) {
	t.Run("Unknown Mode", func(t *testing.T) {
		database, mock := newMockDB(t)
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorContains(t, run(database, "sideways", t.TempDir()), "unknown mode")
	})

	t.Run("Applies In Name Order", func(t *testing.T) {
		database, mock := newMockDB(t)
		dir := t.TempDir()
		writeMigration(t, dir, "0002_b.sql", "-- +migrate Up\nCREATE TABLE b (id int);")
		writeMigration(t, dir, "0001_a.sql", "-- +migrate Up\nCREATE TABLE a (id int);")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		for _, name := range []string{"0001_a.sql", "0002_b.sql"} {
			mock.ExpectQuery("SELECT EXISTS").WithArgs(name).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			mock.ExpectBegin()
			mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(name).WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()
		}

		require.NoError(t, run(database, "up", dir))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShippedMigration(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_storefront.sql"))
	require.NoError(t, err)

	up := extractMigrationPart(string(content), "Up")
	for _, table := range []string{"product", "product_item", "product_images", "orders", "order_items"} {
		assert.Contains(t, up, "CREATE TABLE "+table+" ")
	}
	assert.Contains(t, extractMigrationPart(string(content), "Down"), "DROP TABLE")
}
