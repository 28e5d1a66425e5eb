package sqlite

import (
	"fmt"

	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// tagRegistry is the resolver.Registry view over *Store.
type tagRegistry Store

func (r *tagRegistry) store() *Store { return (*Store)(r) }

func (r *tagRegistry) ByName(name string) (tagmodel.Tag, bool) {
	var t tagmodel.Tag
	row := r.store().q().QueryRowContext(backgroundCtx(), `SELECT id, name FROM tags WHERE name = ?`, name)
	if err := row.Scan(&t.ID, &t.Name); err != nil {
		return tagmodel.Tag{}, false
	}
	return t, true
}

func (r *tagRegistry) ByID(id tagmodel.TagID) (tagmodel.Tag, bool) {
	var t tagmodel.Tag
	row := r.store().q().QueryRowContext(backgroundCtx(), `SELECT id, name FROM tags WHERE id = ?`, int64(id))
	if err := row.Scan(&t.ID, &t.Name); err != nil {
		return tagmodel.Tag{}, false
	}
	return t, true
}

func (r *tagRegistry) Create(name string) (tagmodel.Tag, error) {
	if name == "" {
		return tagmodel.Tag{}, fmt.Errorf("sqlite: tag name must not be empty")
	}
	if len(name) > tagmodel.MaxTagNameLength {
		return tagmodel.Tag{}, fmt.Errorf("sqlite: tag name exceeds %d bytes", tagmodel.MaxTagNameLength)
	}

	ctx := backgroundCtx()
	q := r.store().q()

	if existing, ok := r.ByName(name); ok {
		return existing, nil
	}

	res, err := q.ExecContext(ctx, `INSERT INTO tags (name) VALUES (?)`, name)
	if err != nil {
		// A concurrent insert may have beaten us to the unique
		// constraint; fall back to a lookup rather than surfacing the
		// race as a creation error.
		if existing, ok := r.ByName(name); ok {
			return existing, nil
		}
		return tagmodel.Tag{}, fmt.Errorf("sqlite: create tag %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return tagmodel.Tag{}, fmt.Errorf("sqlite: create tag %q: %w", name, err)
	}
	return tagmodel.Tag{ID: tagmodel.TagID(id), Name: name}, nil
}

// Remove deletes a tag and, via ON DELETE CASCADE, every incident
// relation and membership row.
func (r *tagRegistry) Remove(id tagmodel.TagID) error {
	ctx := backgroundCtx()
	_, err := r.store().q().ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("sqlite: remove tag %d: %w", id, err)
	}
	return nil
}

// All returns every registered tag, ordered by id.
func (r *tagRegistry) All() ([]tagmodel.Tag, error) {
	ctx := backgroundCtx()
	rows, err := r.store().q().QueryContext(ctx, `SELECT id, name FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list tags: %w", err)
	}
	defer rows.Close()

	var out []tagmodel.Tag
	for rows.Next() {
		var t tagmodel.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scan tag: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
