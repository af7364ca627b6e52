package models

import "time"

const (
	// MaxTitleLen and MaxContentLen mirror the column widths of the posts table.
	MaxTitleLen   = 500
	MaxContentLen = 500
	MaxAuthorLen  = 255
)

type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	BaseTime
}

// Update overwrites the editable fields. Author is never changed after insert.
func (p *Post) Update(title, content string) {
	p.Title = title
	p.Content = content
}

// PostSaveRequest is the body of POST /api/v1/posts.
type PostSaveRequest struct {
	Title   string `json:"title" validate:"required,max=500"`
	Content string `json:"content" validate:"required,max=500"`
	Author  string `json:"author" validate:"max=255"`
}

func (r PostSaveRequest) ToPost() Post {
	return Post{Title: r.Title, Content: r.Content, Author: r.Author}
}

// PostUpdateRequest is the body of PUT /api/v1/posts/{id}.
type PostUpdateRequest struct {
	Title   string `json:"title" validate:"required,max=500"`
	Content string `json:"content" validate:"required,max=500"`
}

// PostResponse is the single-post view used by the API and the edit page.
type PostResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

func NewPostResponse(p Post) PostResponse {
	return PostResponse{ID: p.ID, Title: p.Title, Content: p.Content, Author: p.Author}
}

// PostListResponse is one row of the post list.
type PostListResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

func NewPostListResponse(p Post) PostListResponse {
	return PostListResponse{ID: p.ID, Title: p.Title, Author: p.Author, ModifiedDate: p.ModifiedAt}
}
