package models

import (
	"time"
)

// Movie is a catalog record. Runtime is free text, as supplied by clients.
type Movie struct {
	ID        int       `db:"movie_id"`
	Name      string    `db:"movie_name"`
	Type      string    `db:"movie_type"`
	Language  string    `db:"movie_language"`
	Genre     string    `db:"movie_genre"`
	Runtime   string    `db:"movie_runtime"`
	CreatedAt time.Time `db:"created_at"`
}

// MovieView is the public projection of a Movie returned by the API.
// movie_type is stored but not exposed.
type MovieView struct {
	ID       int    `json:"movie_id"`
	Name     string `json:"movie_name"`
	Language string `json:"movie_language"`
	Genre    string `json:"movie_genre"`
	Runtime  string `json:"movie_runtime"`
}

func NewMovieView(m Movie) MovieView {
	return MovieView{
		ID:       m.ID,
		Name:     m.Name,
		Language: m.Language,
		Genre:    m.Genre,
		Runtime:  m.Runtime,
	}
}

// NewMovieViews never returns nil so an empty catalog serializes as [].
func NewMovieViews(movies []Movie) []MovieView {
	out := make([]MovieView, 0, len(movies))
	for _, m := range movies {
		out = append(out, NewMovieView(m))
	}
	return out
}
