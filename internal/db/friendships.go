package db

// scanFriendship scans a row into a FriendshipRow. The row must have 4 columns in standard order.
func scanFriendship(scanner interface{ Scan(dest ...any) error }) (FriendshipRow, error) {
	var f FriendshipRow
	err := scanner.Scan(&f.UserA, &f.UserB, &f.Quality, &f.CreatedAt)
	return f, err
}

// AllFriendships returns all friendships, oldest first
func (d *DB) AllFriendships() ([]FriendshipRow, error) {
	rows, err := d.conn.Query(`
		SELECT user_a, user_b, quality, created_at
		FROM friendships ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friendships []FriendshipRow
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, err
		}
		friendships = append(friendships, f)
	}
	return friendships, rows.Err()
}

// FriendshipsForUser returns all friendships where the given user is either side
func (d *DB) FriendshipsForUser(userID string) ([]FriendshipRow, error) {
	rows, err := d.conn.Query(`
		SELECT user_a, user_b, quality, created_at
		FROM friendships WHERE user_a = ? OR user_b = ?
		ORDER BY created_at, rowid
	`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friendships []FriendshipRow
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, err
		}
		friendships = append(friendships, f)
	}
	return friendships, rows.Err()
}
