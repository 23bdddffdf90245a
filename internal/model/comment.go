package model

import "time"

type Comment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	PostSlug  string    `json:"post_slug"`
	UserImage string    `json:"user_image"`
	Date      time.Time `json:"date"`
	Published bool      `json:"-"`
}
