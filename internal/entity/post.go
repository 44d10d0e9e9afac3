package entity

import "time"

// Post is the full document stored in the KV namespace under post:{id}.
// Category and Tags are filled in from the relational store when available.
type Post struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Content     string       `json:"content"`
	PublishedAt time.Time    `json:"published_at"`
	Category    *CategoryRef `json:"category,omitempty"`
	Tags        []TagRef     `json:"tags,omitempty"`
}

// PostSummary is the shape kept in the posts:list index.
type PostSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"published_at"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TagRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

func (p *Post) Summarize() PostSummary {
	return PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Summary:     p.Summary,
		PublishedAt: p.PublishedAt,
	}
}
