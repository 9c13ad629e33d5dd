// Package model holds the orphanage entity, the request payloads that
// create and read it and the views rendered back to clients.
package model

import "time"

// Orphanage is a care institution volunteers can visit.
//
// Every orphanage has at least a name and a position. Images are kept in
// insertion order, which is the order clients display them in.
type Orphanage struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Latitude       float64   `db:"latitude"`
	Longitude      float64   `db:"longitude"`
	About          string    `db:"about"`
	Instructions   string    `db:"instructions"`
	OpeningHours   string    `db:"opening_hours"`
	OpenOnWeekends bool      `db:"open_on_weekends"`
	CreatedAt      time.Time `db:"created_at"`

	Images []Image `db:"-"`
}

// Image references a stored photo of an orphanage. Path is the stored file
// name, not a URL.
type Image struct {
	ID          int64  `db:"id"`
	Path        string `db:"path"`
	OrphanageID int64  `db:"orphanage_id"`
}

// NewOrphanage is the parsed, validated input for creating an orphanage.
// ImagePaths are the names the files were stored under.
type NewOrphanage struct {
	Name           string
	Latitude       float64
	Longitude      float64
	About          string
	Instructions   string
	OpeningHours   string
	OpenOnWeekends bool
	ImagePaths     []string
}
