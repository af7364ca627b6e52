package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crucial707/springboard/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

// PostRepo owns the posts table. It is the only writer of the auditing
// timestamps: created_at on insert, modified_at on insert and update.
type PostRepo struct {
	DB  *sql.DB
	now func() time.Time
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db, now: time.Now}
}

const postColumns = `id, title, content, author, created_at, modified_at`

func scanPost(row interface{ Scan(...any) error }) (models.Post, error) {
	var p models.Post
	var author sql.NullString
	err := row.Scan(&p.ID, &p.Title, &p.Content, &author, &p.CreatedAt, &p.ModifiedAt)
	p.Author = author.String
	return p, err
}

// ========================
// CREATE POST
// ========================

func (r *PostRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.MarkCreated(r.now().UTC())
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, author, created_at, modified_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.Title, p.Content, nullString(p.Author), p.CreatedAt, p.ModifiedAt,
	).Scan(&p.ID)
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

// ========================
// GET POST BY ID
// ========================

func (r *PostRepo) GetByID(ctx context.Context, id int64) (models.Post, error) {
	p, err := scanPost(r.DB.QueryRowContext(ctx,
		`SELECT `+postColumns+`
		 FROM posts
		 WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("select post %d: %w", id, err)
	}
	return p, nil
}

// ========================
// LIST POSTS, NEWEST FIRST
// ========================

func (r *PostRepo) ListDesc(ctx context.Context) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ========================
// UPDATE POST BY ID
// ========================

// Update overwrites title and content. modified_at becomes now, or one
// microsecond past its previous value when the clock has not advanced.
func (r *PostRepo) Update(ctx context.Context, id int64, title, content string) (models.Post, error) {
	p, err := scanPost(r.DB.QueryRowContext(ctx,
		`UPDATE posts
		 SET title = $1, content = $2,
		     modified_at = GREATEST($3, modified_at + INTERVAL '1 microsecond')
		 WHERE id = $4
		 RETURNING `+postColumns,
		title, content, r.now().UTC(), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("update post %d: %w", id, err)
	}
	return p, nil
}

// ========================
// DELETE POST BY ID
// ========================

func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
