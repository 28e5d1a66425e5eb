package sqlite

import "github.com/taggsonomy/tagengine/internal/tagmodel"

// membershipStore is the membership.Store view over *Store.
type membershipStore Store

func (m *membershipStore) store() *Store { return (*Store)(m) }

func (m *membershipStore) Insert(tagSet tagmodel.TagSetID, tag tagmodel.TagID) {
	ctx := backgroundCtx()
	_, _ = m.store().q().ExecContext(ctx,
		`INSERT OR IGNORE INTO tagset_members (tagset_id, tag_id) VALUES (?, ?)`, int64(tagSet), int64(tag))
}

func (m *membershipStore) Delete(tagSet tagmodel.TagSetID, tag tagmodel.TagID) {
	ctx := backgroundCtx()
	_, _ = m.store().q().ExecContext(ctx,
		`DELETE FROM tagset_members WHERE tagset_id = ? AND tag_id = ?`, int64(tagSet), int64(tag))
}

func (m *membershipStore) Contains(tagSet tagmodel.TagSetID, tag tagmodel.TagID) bool {
	ctx := backgroundCtx()
	var one int
	row := m.store().q().QueryRowContext(ctx,
		`SELECT 1 FROM tagset_members WHERE tagset_id = ? AND tag_id = ? LIMIT 1`, int64(tagSet), int64(tag))
	return row.Scan(&one) == nil
}

func (m *membershipStore) Size(tagSet tagmodel.TagSetID) int {
	ctx := backgroundCtx()
	var n int
	row := m.store().q().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tagset_members WHERE tagset_id = ?`, int64(tagSet))
	if err := row.Scan(&n); err != nil {
		return 0
	}
	return n
}

func (m *membershipStore) Members(tagSet tagmodel.TagSetID) []tagmodel.TagID {
	ctx := backgroundCtx()
	rows, err := m.store().q().QueryContext(ctx,
		`SELECT tag_id FROM tagset_members WHERE tagset_id = ?`, int64(tagSet))
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []tagmodel.TagID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out
		}
		out = append(out, tagmodel.TagID(id))
	}
	return out
}

func (m *membershipStore) TagSetsContaining(tag tagmodel.TagID) []tagmodel.TagSetID {
	ctx := backgroundCtx()
	rows, err := m.store().q().QueryContext(ctx,
		`SELECT tagset_id FROM tagset_members WHERE tag_id = ?`, int64(tag))
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []tagmodel.TagSetID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out
		}
		out = append(out, tagmodel.TagSetID(id))
	}
	return out
}

func (m *membershipStore) DeleteTagSet(tagSet tagmodel.TagSetID) {
	ctx := backgroundCtx()
	_, _ = m.store().q().ExecContext(ctx, `DELETE FROM tagset_members WHERE tagset_id = ?`, int64(tagSet))
}

func (m *membershipStore) DeleteTag(tag tagmodel.TagID) {
	ctx := backgroundCtx()
	_, _ = m.store().q().ExecContext(ctx, `DELETE FROM tagset_members WHERE tag_id = ?`, int64(tag))
}
