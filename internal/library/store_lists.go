package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// CreateList creates a named list. Names are trimmed before storage and
// compared case-insensitively; a collision returns ErrDuplicateList.
func (s *Store) CreateList(ctx context.Context, name string) (*List, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: list name must not be blank", ErrValidation)
	}

	// SQLite's NOCASE collation only folds ASCII, so the duplicate check
	// runs over Unicode case folding here; the UNIQUE index remains as a
	// backstop.
	existing, err := s.ListByName(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateList, trimmed)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, `INSERT INTO lists (name, created_at) VALUES (?, ?)`, trimmed, timestamp)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateList, trimmed)
		}
		return nil, fmt.Errorf("insert list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &List{ID: id, Name: trimmed, CreatedAt: mustParseTime(timestamp)}, nil
}

// Lists returns all lists ordered by name, case-insensitively.
func (s *Store) Lists(ctx context.Context) ([]*List, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM lists ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []*List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// ListByID fetches a list by identifier. Returns nil when absent.
func (s *Store) ListByID(ctx context.Context, id int64) (*List, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM lists WHERE id = ?`, id)
	list, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return list, nil
}

// ListByName fetches a list by case-folded name match. Returns nil when absent.
func (s *Store) ListByName(ctx context.Context, name string) (*List, error) {
	lists, err := s.Lists(ctx)
	if err != nil {
		return nil, err
	}
	folder := cases.Fold()
	want := folder.String(strings.TrimSpace(name))
	for _, list := range lists {
		if folder.String(list.Name) == want {
			return list, nil
		}
	}
	return nil, nil
}

// DeleteList removes a list and all of its memberships.
func (s *Store) DeleteList(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// AddToList appends an item to a list at max(position)+1. Adding an item
// that is already a member is a no-op.
func (s *Store) AddToList(ctx context.Context, listID, itemID int64) error {
	var maxPos sql.NullInt64
	row := s.db.QueryRowContext(ctx, `SELECT MAX(position) FROM list_items WHERE list_id = ?`, listID)
	if err := row.Scan(&maxPos); err != nil {
		return fmt.Errorf("max position: %w", err)
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO list_items (list_id, item_id, position) VALUES (?, ?, ?)`,
		listID,
		itemID,
		maxPos.Int64+1,
	)
	if err != nil {
		return fmt.Errorf("add to list: %w", err)
	}
	return nil
}

// RemoveFromList deletes a membership. Positions of the remaining entries
// are left untouched; order is defined by relative position only.
func (s *Store) RemoveFromList(ctx context.Context, listID, itemID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM list_items WHERE list_id = ? AND item_id = ?`, listID, itemID)
	if err != nil {
		return false, fmt.Errorf("remove from list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListItems returns the entries of a list ordered by position ascending.
func (s *Store) ListItems(ctx context.Context, listID int64) ([]*ListEntry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT li.position, `+prefixedItemColumns("m")+`
         FROM list_items li
         JOIN items m ON m.id = li.item_id
         WHERE li.list_id = ?
         ORDER BY li.position ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var entries []*ListEntry
	for rows.Next() {
		entry, err := scanListEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MoveItem swaps an item's position value with its neighbor in the given
// direction. Moving past a boundary, or moving an item that is not a
// member, is a no-op.
func (s *Store) MoveItem(ctx context.Context, listID, itemID int64, direction Direction) error {
	entries, err := s.ListItems(ctx, listID)
	if err != nil {
		return err
	}

	idx := -1
	for i, entry := range entries {
		if entry.Item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	var neighbor int
	switch direction {
	case MoveUp:
		if idx == 0 {
			return nil
		}
		neighbor = idx - 1
	case MoveDown:
		if idx == len(entries)-1 {
			return nil
		}
		neighbor = idx + 1
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrValidation, direction)
	}

	a, b := entries[idx], entries[neighbor]

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin move tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`UPDATE list_items SET position = ? WHERE list_id = ? AND item_id = ?`,
		b.Position, listID, a.Item.ID,
	); err != nil {
		return fmt.Errorf("swap position: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE list_items SET position = ? WHERE list_id = ? AND item_id = ?`,
		a.Position, listID, b.Item.ID,
	); err != nil {
		return fmt.Errorf("swap position: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit move: %w", err)
	}
	return nil
}

func scanList(scanner interface{ Scan(dest ...any) error }) (*List, error) {
	var (
		id         int64
		name       string
		createdRaw sql.NullString
	)
	if err := scanner.Scan(&id, &name, &createdRaw); err != nil {
		return nil, err
	}
	list := &List{ID: id, Name: name}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		list.CreatedAt = created
	}
	return list, nil
}

func scanListEntry(scanner interface{ Scan(dest ...any) error }) (*ListEntry, error) {
	var (
		position   int
		id         int64
		title      string
		year       sql.NullInt64
		plot       sql.NullString
		posterURL  sql.NullString
		posterPath sql.NullString
		format     string
		watched    sql.NullInt64
		location   sql.NullString
		notes      sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
		source     sql.NullString
		sourceID   sql.NullString
	)

	if err := scanner.Scan(
		&position,
		&id,
		&title,
		&year,
		&plot,
		&posterURL,
		&posterPath,
		&format,
		&watched,
		&location,
		&notes,
		&createdRaw,
		&updatedRaw,
		&source,
		&sourceID,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:         id,
		Title:      title,
		Year:       int(year.Int64),
		Plot:       plot.String,
		PosterURL:  posterURL.String,
		PosterPath: posterPath.String,
		Format:     Format(format),
		Watched:    watched.Int64 != 0,
		Location:   location.String,
		Notes:      notes.String,
		Source:     source.String,
		SourceID:   sourceID.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		item.UpdatedAt = updated
	}
	return &ListEntry{Position: position, Item: item}, nil
}

func prefixedItemColumns(alias string) string {
	cols := strings.Split(itemColumns, ", ")
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

func mustParseTime(value string) time.Time {
	t, err := parseTimeString(value)
	if err != nil {
		return time.Time{}
	}
	return t
}
