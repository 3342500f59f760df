// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-teacher-desk/models"
)

// qb is the squirrel builder shared by all repositories. SQLite uses `?`
// placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// upsertSuffix builds the ON CONFLICT clause that turns an insert into an
// upsert keyed on the local id, updating the given columns from the proposed
// row.
func upsertSuffix(columns []string) string {
	set := ""
	for i, col := range columns {
		if i > 0 {
			set += ", "
		}
		set += col + " = excluded." + col
	}
	return "ON CONFLICT(id) DO UPDATE SET " + set
}

// markSynced flips one row to SYNCED, recording the SIS-assigned id when the
// server returned one. A single UPDATE, so the transition is atomic per row.
func (db *DB) markSynced(ctx context.Context, table, id, sisID string) error {
	b := qb.Update(table).
		Set("sync_status", string(models.SyncSynced)).
		Where(sq.Eq{"id": id})
	if sisID != "" {
		b = b.Set("sis_id", sisID)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build mark-synced query for %s: %w", table, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark %s %s synced: %w", table, id, err)
	}
	return nil
}

// markConflict parks one row in CONFLICT. Only explicit conflict detection
// calls this; no code path flips a row to CONFLICT implicitly.
func (db *DB) markConflict(ctx context.Context, table, id string) error {
	query, args, err := qb.Update(table).
		Set("sync_status", string(models.SyncConflict)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark-conflict query for %s: %w", table, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark %s %s conflict: %w", table, id, err)
	}
	return nil
}

// selectWhereStatus builds the needing-sync query: the pending set is derived
// live from entity state, there is no separate queue table.
func selectWhereStatus(table string, columns []string, status models.SyncStatus) sq.SelectBuilder {
	return qb.Select(columns...).
		From(table).
		Where(sq.Eq{"sync_status": string(status)}).
		OrderBy("last_modified ASC")
}

// stampLocalEdit fills in the bookkeeping for the UI mutation path: a fresh
// uuid when the record is new, the local clock as last_modified, and PENDING
// status so the scheduler picks the record up.
func stampLocalEdit(meta *models.SyncMeta, newID func() string) {
	if meta.ID == "" {
		meta.ID = newID()
	}
	meta.LastModified = time.Now().UTC()
	meta.SyncStatus = models.SyncPending
}
