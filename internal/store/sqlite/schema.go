package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS tags (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS inclusions (
	sup_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	sub_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (sup_id, sub_id)
);
CREATE INDEX IF NOT EXISTS idx_inclusions_sub ON inclusions(sub_id);

CREATE TABLE IF NOT EXISTS exclusions (
	a_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	b_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (a_id, b_id),
	CHECK (a_id < b_id)
);

CREATE TABLE IF NOT EXISTS tagsets (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	host_kind   TEXT,
	host_id     TEXT,
	UNIQUE (host_kind, host_id)
);

CREATE TABLE IF NOT EXISTS tagset_members (
	tagset_id INTEGER NOT NULL REFERENCES tagsets(id) ON DELETE CASCADE,
	tag_id    INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (tagset_id, tag_id)
);
CREATE INDEX IF NOT EXISTS idx_tagset_members_tag ON tagset_members(tag_id);
`
