package sqlite

import "github.com/taggsonomy/tagengine/internal/tagmodel"

// relationStore is the relation.Store view over *Store.
type relationStore Store

func (r *relationStore) store() *Store { return (*Store)(r) }

func (r *relationStore) AddInclusionEdge(sup, sub tagmodel.TagID) {
	if sup == sub {
		return
	}
	ctx := backgroundCtx()
	_, _ = r.store().q().ExecContext(ctx,
		`INSERT OR IGNORE INTO inclusions (sup_id, sub_id) VALUES (?, ?)`, int64(sup), int64(sub))
}

func (r *relationStore) RemoveInclusionEdge(sup, sub tagmodel.TagID) {
	ctx := backgroundCtx()
	_, _ = r.store().q().ExecContext(ctx,
		`DELETE FROM inclusions WHERE sup_id = ? AND sub_id = ?`, int64(sup), int64(sub))
}

// exclusionPair returns the (min, max) ordering the CHECK(a_id < b_id)
// constraint requires, per spec.md §9's design note on storing a
// symmetric relation as a single canonically-ordered edge.
func exclusionPair(a, b tagmodel.TagID) (tagmodel.TagID, tagmodel.TagID) {
	if a < b {
		return a, b
	}
	return b, a
}

func (r *relationStore) AddExclusionEdge(a, b tagmodel.TagID) {
	if a == b {
		return
	}
	lo, hi := exclusionPair(a, b)
	ctx := backgroundCtx()
	_, _ = r.store().q().ExecContext(ctx,
		`INSERT OR IGNORE INTO exclusions (a_id, b_id) VALUES (?, ?)`, int64(lo), int64(hi))
}

func (r *relationStore) RemoveExclusionEdge(a, b tagmodel.TagID) {
	lo, hi := exclusionPair(a, b)
	ctx := backgroundCtx()
	_, _ = r.store().q().ExecContext(ctx,
		`DELETE FROM exclusions WHERE a_id = ? AND b_id = ?`, int64(lo), int64(hi))
}

func (r *relationStore) DirectSubtags(t tagmodel.TagID) []tagmodel.TagID {
	return r.queryIDs(`SELECT sub_id FROM inclusions WHERE sup_id = ?`, t)
}

func (r *relationStore) DirectSupertags(t tagmodel.TagID) []tagmodel.TagID {
	return r.queryIDs(`SELECT sup_id FROM inclusions WHERE sub_id = ?`, t)
}

func (r *relationStore) DirectExclusions(t tagmodel.TagID) []tagmodel.TagID {
	a := r.queryIDs(`SELECT b_id FROM exclusions WHERE a_id = ?`, t)
	b := r.queryIDs(`SELECT a_id FROM exclusions WHERE b_id = ?`, t)
	return append(a, b...)
}

func (r *relationStore) RemoveTag(t tagmodel.TagID) {
	// ON DELETE CASCADE on inclusions/exclusions handles this once the
	// tag row itself is removed via the registry; this method only needs
	// to cover the case where the caller wants edges gone without
	// removing the tag row (administrative cleanup during a Remove that
	// hasn't happened yet).
	ctx := backgroundCtx()
	q := r.store().q()
	_, _ = q.ExecContext(ctx, `DELETE FROM inclusions WHERE sup_id = ? OR sub_id = ?`, int64(t), int64(t))
	_, _ = q.ExecContext(ctx, `DELETE FROM exclusions WHERE a_id = ? OR b_id = ?`, int64(t), int64(t))
}

func (r *relationStore) queryIDs(query string, t tagmodel.TagID) []tagmodel.TagID {
	ctx := backgroundCtx()
	rows, err := r.store().q().QueryContext(ctx, query, int64(t))
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
