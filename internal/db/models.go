package db

// ProfileRow represents a row in the profiles table
type ProfileRow struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

// FriendshipRow represents a row in the friendships table
type FriendshipRow struct {
	UserA     string `json:"user_a"`
	UserB     string `json:"user_b"`
	Quality   int    `json:"quality"`
	CreatedAt int64  `json:"created_at"` // Unix millis
}
