package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/GustavoCaso/spendsort/internal/category"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Backend stores the category mapping in a SQLite database.
type Backend struct {
	db *sql.DB
}

var _ category.Backend = (*Backend)(nil)

func New(source string) (*Backend, error) {
	if err := RunMigrations(source); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	_, err = db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Backend{db: db}, nil
}

// RunMigrations applies the embedded schema using its own connection,
// since closing the migrate instance closes the database handle it was given.
func RunMigrations(source string) error {
	migrateDB, err := sql.Open("sqlite3", source)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := migratesqlite.WithInstance(migrateDB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (b *Backend) Load() ([]category.Entry, error) {
	ctx := context.Background()

	rows, err := b.db.QueryContext(ctx, `
		SELECT c.name, k.keyword
		FROM categories c
		LEFT JOIN keywords k ON k.category_id = c.id
		ORDER BY c.position, k.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []category.Entry{}
	for rows.Next() {
		var name string
		var keyword sql.NullString

		if err = rows.Scan(&name, &keyword); err != nil {
			return nil, err
		}

		if len(entries) == 0 || entries[len(entries)-1].Name != name {
			entries = append(entries, category.Entry{Name: name, Keywords: []string{}})
		}

		if keyword.Valid {
			last := &entries[len(entries)-1]
			last.Keywords = append(last.Keywords, keyword.String)
		}
	}

	return entries, rows.Err()
}

// Save replaces every stored row with entries in a single transaction.
func (b *Backend) Save(entries []category.Entry) error {
	ctx := context.Background()

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err = replaceAll(ctx, tx, entries); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func replaceAll(ctx context.Context, tx *sql.Tx, entries []category.Entry) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM keywords"); err != nil {
		return fmt.Errorf("failed to delete keywords: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}

	categoryStmt, err := tx.PrepareContext(ctx, "INSERT INTO categories(name, position) VALUES(?, ?)")
	if err != nil {
		return err
	}
	defer categoryStmt.Close()

	keywordStmt, err := tx.PrepareContext(ctx, "INSERT INTO keywords(category_id, keyword, position) VALUES(?, ?, ?)")
	if err != nil {
		return err
	}
	defer keywordStmt.Close()

	for i, entry := range entries {
		result, insertErr := categoryStmt.ExecContext(ctx, entry.Name, i)
		if insertErr != nil {
			return fmt.Errorf("failed to insert category %q: %w", entry.Name, insertErr)
		}

		id, idErr := result.LastInsertId()
		if idErr != nil {
			return idErr
		}

		for j, keyword := range entry.Keywords {
			if _, insertErr = keywordStmt.ExecContext(ctx, id, keyword, j); insertErr != nil {
				return fmt.Errorf("failed to insert keyword %q: %w", keyword, insertErr)
			}
		}
	}

	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}
