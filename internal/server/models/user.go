// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. HashedPassword holds the PHC-encoded argon2id
// hash and is never serialized.
type User struct {
	ID             int64     `json:"userId"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
