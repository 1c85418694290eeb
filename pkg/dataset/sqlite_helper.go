/*
Copyright 2026 The grasp-dataset-tool Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package dataset

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"
)

// use constants for expected column names
const (
	idCol        = "id"
	splitCol     = "split"
	groupHashCol = "group_hash"
	userCol      = "user_content"
	assistantCol = "assistant_content"
	nImagesCol   = "n_images"
	imagesCol    = "images"
)

// sqliteHelper stores output examples in a sqlite table for ad-hoc
// inspection (split sizes, per-group counts, answer distributions) without
// reloading the JSON files.
type sqliteHelper struct {
	logger    logr.Logger
	tableName string
}

func newSqliteHelper(tableName string, logger logr.Logger) *sqliteHelper {
	return &sqliteHelper{
		tableName: tableName,
		logger:    logger,
	}
}

// groupHash is the stored form of a frame-sequence key; the raw key is an
// unbounded path join, the hash keeps the column small and indexable.
func groupHash(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}

// labeledPartition is one output partition with the name stored in the
// split column ("train", "eval", or "all" in non-split mode).
type labeledPartition struct {
	name     string
	examples []taggedExample
}

// storeExamples creates the table and inserts all examples of the given
// partitions, in partition order, in one transaction.
func (s *sqliteHelper) storeExamples(ctx context.Context, dbPath string, partitions []labeledPartition) error {
	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		return fmt.Errorf("cannot open database %s: %w", dbPath, err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, s.getCreateTableQuery()); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	s.logger.Info("Table created successfully", "table", s.tableName)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, s.getInsertQuery())
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	count := 0
	for _, part := range partitions {
		for _, ex := range part.examples {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return fmt.Errorf("operation cancelled: %w", ctx.Err())
			default:
			}

			imagesJSON, err := json.Marshal(ex.example.Images)
			if err != nil {
				return fmt.Errorf("failed to marshal images: %w", err)
			}

			if _, err := stmt.ExecContext(ctx, part.name, groupHash(ex.key),
				ex.example.Messages[0].Content, ex.example.Messages[1].Content,
				len(ex.example.Images), imagesJSON); err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.logger.Info("Records stored successfully", "count", count, "path", dbPath)

	return nil
}

func (s *sqliteHelper) getCreateTableQuery() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		%s INTEGER PRIMARY KEY,
		%s TEXT NOT NULL,
		%s BLOB NOT NULL,
		%s TEXT NOT NULL,
		%s TEXT NOT NULL,
		%s INTEGER NOT NULL,
		%s JSON NOT NULL
	)`, s.tableName, idCol, splitCol, groupHashCol, userCol, assistantCol, nImagesCol, imagesCol)
}

func (s *sqliteHelper) getInsertQuery() string {
	return fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s)
        VALUES (?, ?, ?, ?, ?, ?)`,
		s.tableName, splitCol, groupHashCol, userCol, assistantCol, nImagesCol, imagesCol)
}
