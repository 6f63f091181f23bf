package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const itemColumns = "id, title, year, plot, poster_url, poster_path, format, watched, location, notes, created_at, updated_at, source, source_id"

// AddItem inserts a new catalog item. The title is trimmed and must not be
// blank; missing or unknown formats fall back to Blu-ray.
func (s *Store) AddItem(ctx context.Context, draft ItemDraft) (*Item, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
	}

	format := draft.Format
	if _, ok := knownFormats[format]; !ok {
		format = ParseFormat(string(format))
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO items (
            title, year, plot, poster_url, poster_path, format, watched,
            location, notes, created_at, updated_at, source, source_id
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		title,
		nullableInt(draft.Year),
		nullableString(strings.TrimSpace(draft.Plot)),
		nullableString(strings.TrimSpace(draft.PosterURL)),
		nullableString(draft.PosterPath),
		string(format),
		boolToInt(draft.Watched),
		nullableString(strings.TrimSpace(draft.Location)),
		nullableString(strings.TrimSpace(draft.Notes)),
		timestamp,
		timestamp,
		nullableString(draft.Source),
		nullableString(draft.SourceID),
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.ItemByID(ctx, id)
}

// ItemByID fetches a catalog item by identifier. Returns nil when absent.
func (s *Store) ItemByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Items returns a snapshot of the catalog, optionally filtered by a
// case-insensitive title substring and ordered by the given sort key.
func (s *Store) Items(ctx context.Context, query string, sort SortKey) ([]*Item, error) {
	var (
		where string
		args  []any
	)
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		where = ` WHERE title LIKE ?`
		args = append(args, "%"+trimmed+"%")
	}

	order := ` ORDER BY title COLLATE NOCASE ASC`
	switch sort {
	case SortTitleDesc:
		order = ` ORDER BY title COLLATE NOCASE DESC`
	case SortYearDesc:
		// Items without a year sort after every dated item.
		order = ` ORDER BY COALESCE(year, 0) DESC, title COLLATE NOCASE ASC`
	case SortAddedDesc:
		order = ` ORDER BY created_at DESC, id DESC`
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items`+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem applies a partial edit to an item, refreshing updated_at. It is
// a no-op when the update carries no fields.
func (s *Store) UpdateItem(ctx context.Context, id int64, update ItemUpdate) error {
	if update.empty() {
		return nil
	}

	sets := make([]string, 0, 10)
	args := make([]any, 0, 11)

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return fmt.Errorf("%w: title must not be blank", ErrValidation)
		}
		sets = append(sets, "title = ?")
		args = append(args, title)
	}
	if update.Year != nil {
		sets = append(sets, "year = ?")
		args = append(args, nullableInt(*update.Year))
	}
	if update.Plot != nil {
		sets = append(sets, "plot = ?")
		args = append(args, nullableString(strings.TrimSpace(*update.Plot)))
	}
	if update.Format != nil {
		sets = append(sets, "format = ?")
		args = append(args, string(ParseFormat(string(*update.Format))))
	}
	if update.Watched != nil {
		sets = append(sets, "watched = ?")
		args = append(args, boolToInt(*update.Watched))
	}
	if update.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, nullableString(strings.TrimSpace(*update.Location)))
	}
	if update.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, nullableString(strings.TrimSpace(*update.Notes)))
	}
	if update.PosterURL != nil {
		sets = append(sets, "poster_url = ?")
		args = append(args, nullableString(strings.TrimSpace(*update.PosterURL)))
	}
	if update.PosterPath != nil {
		sets = append(sets, "poster_path = ?")
		args = append(args, nullableString(*update.PosterPath))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	args = append(args, id)

	if _, err := s.db.ExecContext(ctx, `UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// DeleteItem removes an item. List memberships cascade; the cached poster
// file stays on disk so re-adding the same title skips the download.
func (s *Store) DeleteItem(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
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
	return item, nil
}
