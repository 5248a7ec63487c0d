package repository

import (
	"database/sql"
	"time"
)

// BatchRepo records ingested import files so the same file is never
// applied twice.
type BatchRepo struct {
	db *sql.DB
}

func NewBatchRepo(db *sql.DB) *BatchRepo {
	return &BatchRepo{db: db}
}

// ExistsByHash checks whether a file with the given hash has already
// been ingested (idempotency check).
func (r *BatchRepo) ExistsByHash(hash string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM import_batches WHERE file_hash = ?", hash,
	).Scan(&count)
	return count > 0, err
}

// Record logs a completed import.
func (r *BatchRepo) Record(id, kind, hash string, recordCount int) error {
	_, err := r.db.Exec(
		`INSERT INTO import_batches (id, kind, file_hash, record_count, ingested_at)
		VALUES (?,?,?,?,?)`,
		id, kind, hash, recordCount, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
