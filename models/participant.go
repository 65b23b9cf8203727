package models

type ParticipantProfile struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Institution     string `json:"institution"`
	Department      string `json:"department"`
	RegistrationNo  string `json:"registration_no"`
	Year            int    `json:"year"` // 1-6
	RegisteredCount int    `json:"registered_count"`
	WonCount        int    `json:"won_count"`
	WishlistCount   int    `json:"wishlist_count"`
}
