// Package model defines domain entities used by the query, auth and catalog layers.
package model

import "time"

// Record is one schemaless row of a collection. Every persisted record carries
// a unique "id" plus "created_at"/"updated_at" timestamps; all other fields
// vary by logical entity type and are enforced only by convention.
type Record map[string]any

// Reserved record field names assigned by the query layer on insert.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// ID returns the record's "id" field, or "" if absent or not a string.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Clone returns a shallow copy of the record. Mutating the copy's top-level
// keys never aliases the original.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// User is an account stored in the "users" collection. Password is kept only
// as a packed argon2id hash, never in plaintext.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the caller-facing projection of a User with credential
// material stripped.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips credential material from a User.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// Session is the single current authenticated identity. Zero or one session
// exists at a time; expiry is enforced lazily on read.
type Session struct {
	User        PublicUser `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

// Expired reports whether the session's expiry instant has passed.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Artist is a catalog entry for a label artist.
type Artist struct {
	ID       string   `json:"id"`
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	Genre    string   `json:"genre"`
	ImageURL string   `json:"image_url"`
	Featured bool     `json:"featured"`
	Links    []string `json:"links,omitempty"`

	// Releases is populated only by read-time joins, never persisted.
	Releases []Release `json:"releases,omitempty"`
}

// Release is an album/EP/single owned by one artist.
type Release struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	ArtistID    string    `json:"artist_id"`
	Title       string    `json:"title"`
	Kind        string    `json:"kind"` // album, ep, single
	Genre       string    `json:"genre"`
	CoverURL    string    `json:"cover_url"`
	ReleaseDate time.Time `json:"release_date"`
	Featured    bool      `json:"featured"`

	// Tracks is populated only by read-time joins, never persisted.
	Tracks []Track `json:"tracks,omitempty"`
}

// Track is a single audio track belonging to a release.
type Track struct {
	ID        string `json:"id"`
	ReleaseID string `json:"release_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	Duration  int    `json:"duration"` // seconds
	AudioURL  string `json:"audio_url"`
}

// Post is a blog entry authored by a studio member.
type Post struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Body        string    `json:"body"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"published_at"`

	// Author is populated only by read-time joins, never persisted.
	Author *Author `json:"author,omitempty"`
}

// Author is a blog author profile.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

// Genre is a catalog tag grouping artists and releases.
type Genre struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// StudioService is a bookable studio offering.
type StudioService struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PricePerHr  int    `json:"price_per_hr"`
	Available   bool   `json:"available"`
}
