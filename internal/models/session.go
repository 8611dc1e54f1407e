package models

import "time"

// Session is the per-faculty state kept in the key-value store.
type Session struct {
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	LoggedIn      bool      `json:"logged_in"`
	UnseenNotices int       `json:"unseen_notices"`
	LoginAt       time.Time `json:"login_at"`
}
