package db

// scanProfile scans a row into a ProfileRow. The row must have 4 columns in standard order.
func scanProfile(scanner interface{ Scan(dest ...any) error }) (ProfileRow, error) {
	var p ProfileRow
	err := scanner.Scan(&p.ID, &p.FullName, &p.Age, &p.Gender)
	return p, err
}

// AllProfiles returns all profiles in insertion order
func (d *DB) AllProfiles() ([]ProfileRow, error) {
	rows, err := d.conn.Query(`
		SELECT id, full_name, age, gender
		FROM profiles ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []ProfileRow
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetProfile returns a single profile by ID
func (d *DB) GetProfile(id string) (*ProfileRow, error) {
	row := d.conn.QueryRow(`
		SELECT id, full_name, age, gender
		FROM profiles WHERE id = ?
	`, id)

	p, err := scanProfile(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
