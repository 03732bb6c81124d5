package domain

import "time"

// Comment is attached to exactly one post and is never edited.
type Comment struct {
	User        string    `json:"user" bson:"user"`
	Message     string    `json:"message" bson:"message"`
	DateCreated time.Time `json:"date_created" bson:"date_created"`
	Likes       int       `json:"likes" bson:"likes"`
}

// Post is the forum aggregate root. Author is set at creation and never changes.
type Post struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	Author      string    `json:"author" bson:"author"`
	Tags        []string  `json:"tags" bson:"tags"`
	DateCreated time.Time `json:"date_created" bson:"date_created"`
	Likes       int       `json:"likes" bson:"likes"`
	Comments    []Comment `json:"comments" bson:"comments"`
}
