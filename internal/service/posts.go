package service

import (
	"context"
	"errors"

	"github.com/crucial707/springboard/internal/models"
	"github.com/crucial707/springboard/internal/repo"
	"github.com/go-playground/validator/v10"
)

// PostStore is the persistence the posts service needs. *repo.PostRepo
// satisfies it; implementations report a missing row as repo.ErrPostNotFound.
type PostStore interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	GetByID(ctx context.Context, id int64) (models.Post, error)
	ListDesc(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, id int64, title, content string) (models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// PostsService translates between the post entity and its request/response
// shapes. Only ErrNotFound and *ValidationError are domain errors; anything
// else from the store is returned as is.
type PostsService struct {
	store    PostStore
	validate *validator.Validate

	// OnWrite, when set, is called after each successful create, update or delete.
	OnWrite func(op string)
}

func NewPostsService(store PostStore) *PostsService {
	return &PostsService{store: store, validate: newValidator()}
}

func (s *PostsService) ListAllDescending(ctx context.Context) ([]models.PostListResponse, error) {
	posts, err := s.store.ListDesc(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PostListResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, models.NewPostListResponse(p))
	}
	return out, nil
}

func (s *PostsService) GetByID(ctx context.Context, id int64) (models.PostResponse, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.PostResponse{}, translate(err)
	}
	return models.NewPostResponse(p), nil
}

// Create validates the request, inserts a new post and returns its id.
func (s *PostsService) Create(ctx context.Context, req models.PostSaveRequest) (int64, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return 0, err
	}
	p, err := s.store.Create(ctx, req.ToPost())
	if err != nil {
		return 0, err
	}
	s.written("create")
	return p.ID, nil
}

// Update overwrites title and content of an existing post and returns its id.
func (s *PostsService) Update(ctx context.Context, id int64, req models.PostUpdateRequest) (int64, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return 0, err
	}
	p, err := s.store.Update(ctx, id, req.Title, req.Content)
	if err != nil {
		return 0, translate(err)
	}
	s.written("update")
	return p.ID, nil
}

func (s *PostsService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.written("delete")
	return nil
}

func (s *PostsService) written(op string) {
	if s.OnWrite != nil {
		s.OnWrite(op)
	}
}

func translate(err error) error {
	if errors.Is(err, repo.ErrPostNotFound) {
		return ErrNotFound
	}
	return err
}
