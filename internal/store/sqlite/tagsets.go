package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// tagSetStore is the store.TagSetStore view over *Store.
type tagSetStore Store

func (t *tagSetStore) store() *Store { return (*Store)(t) }

func (t *tagSetStore) scanTagSet(row *sql.Row) (tagmodel.TagSet, bool) {
	var id int64
	var kind, hostID sql.NullString
	if err := row.Scan(&id, &kind, &hostID); err != nil {
		return tagmodel.TagSet{}, false
	}
	ts := tagmodel.TagSet{ID: tagmodel.TagSetID(id)}
	if kind.Valid && hostID.Valid {
		ts.Host = &tagmodel.HostKey{Kind: kind.String, ID: hostID.String}
	}
	return ts, true
}

func (t *tagSetStore) GetOrCreateTagSetFor(kind, hostID string) (tagmodel.TagSet, error) {
	if kind == "" || hostID == "" {
		return tagmodel.TagSet{}, fmt.Errorf("sqlite: host kind and id must be non-empty")
	}
	if ts, ok := t.LookupTagSetFor(kind, hostID); ok {
		return ts, nil
	}

	ctx := backgroundCtx()
	res, err := t.store().q().ExecContext(ctx,
		`INSERT OR IGNORE INTO tagsets (host_kind, host_id) VALUES (?, ?)`, kind, hostID)
	if err != nil {
		return tagmodel.TagSet{}, fmt.Errorf("sqlite: create tagset for %s/%s: %w", kind, hostID, err)
	}
	if ts, ok := t.LookupTagSetFor(kind, hostID); ok {
		return ts, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return tagmodel.TagSet{}, fmt.Errorf("sqlite: create tagset for %s/%s: %w", kind, hostID, err)
	}
	key := tagmodel.HostKey{Kind: kind, ID: hostID}
	return tagmodel.TagSet{ID: tagmodel.TagSetID(id), Host: &key}, nil
}

func (t *tagSetStore) LookupTagSetFor(kind, hostID string) (tagmodel.TagSet, bool) {
	ctx := backgroundCtx()
	row := t.store().q().QueryRowContext(ctx,
		`SELECT id, host_kind, host_id FROM tagsets WHERE host_kind = ? AND host_id = ?`, kind, hostID)
	return t.scanTagSet(row)
}

func (t *tagSetStore) TagSet(id tagmodel.TagSetID) (tagmodel.TagSet, bool) {
	ctx := backgroundCtx()
	row := t.store().q().QueryRowContext(ctx,
		`SELECT id, host_kind, host_id FROM tagsets WHERE id = ?`, int64(id))
	return t.scanTagSet(row)
}

func (t *tagSetStore) CreateUnbound() (tagmodel.TagSet, error) {
	ctx := backgroundCtx()
	res, err := t.store().q().ExecContext(ctx, `INSERT INTO tagsets (host_kind, host_id) VALUES (NULL, NULL)`)
	if err != nil {
		return tagmodel.TagSet{}, fmt.Errorf("sqlite: create unbound tagset: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return tagmodel.TagSet{}, fmt.Errorf("sqlite: create unbound tagset: %w", err)
	}
	return tagmodel.TagSet{ID: tagmodel.TagSetID(id)}, nil
}

func (t *tagSetStore) DeleteTagSet(id tagmodel.TagSetID) {
	ctx := backgroundCtx()
	_, _ = t.store().q().ExecContext(ctx, `DELETE FROM tagsets WHERE id = ?`, int64(id))
}
