package db

import (
	"fmt"
	"time"
)

// SaveProfile inserts a profile. An existing ID is left untouched and
// reported as not inserted.
func (d *DB) SaveProfile(p ProfileRow) (bool, error) {
	res, err := d.conn.Exec(`
		INSERT INTO profiles (id, full_name, age, gender)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, p.ID, p.FullName, p.Age, p.Gender)
	if err != nil {
		return false, fmt.Errorf("saving profile %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SaveFriendship stores a friendship once per unordered pair. Saving an
// existing pair overwrites its quality and keeps the original timestamp,
// so load order is preserved.
func (d *DB) SaveFriendship(a, b string, quality int) error {
	if b < a {
		a, b = b, a
	}
	_, err := d.conn.Exec(`
		INSERT INTO friendships (user_a, user_b, quality, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_a, user_b) DO UPDATE SET quality = excluded.quality
	`, a, b, quality, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("saving friendship %s-%s: %w", a, b, err)
	}
	return nil
}

// Counts returns the number of stored profiles and friendships
func (d *DB) Counts() (profiles, friendships int, err error) {
	err = d.conn.QueryRow(`
		SELECT (SELECT COUNT(*) FROM profiles), (SELECT COUNT(*) FROM friendships)
	`).Scan(&profiles, &friendships)
	return profiles, friendships, err
}
