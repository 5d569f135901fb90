package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "smartblog/internal/errors"
	"smartblog/internal/model"
	"smartblog/internal/repository"
)

const defaultTitle = "Untitled"

// PostService manages the post lifecycle for an authenticated caller. Every
// operation on an existing post checks existence before ownership, so a
// missing post and a foreign post surface distinct errors.
type PostService interface {
	Create(ctx context.Context, caller *model.User, title *string, content *model.Document) (*model.Post, error)
	List(ctx context.Context, caller *model.User) ([]model.Post, error)
	Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, caller *model.User, id uuid.UUID, title *string, content *model.Document) (*model.Post, error)
	Publish(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Post, error)
}

type postService struct {
	posts repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

// Create stores a new draft owned by the caller. A nil or empty title falls
// back to "Untitled"; nil content becomes the empty document. Status is
// always draft regardless of anything the caller supplied.
func (s *postService) Create(ctx context.Context, caller *model.User, title *string, content *model.Document) (*model.Post, error) {
	post := &model.Post{
		UserID:  caller.ID,
		Title:   defaultTitle,
		Content: model.EmptyDocument(),
		Status:  model.StatusDraft,
	}
	if title != nil && *title != "" {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// List returns the caller's posts ordered by updated timestamp descending.
func (s *postService) List(ctx context.Context, caller *model.User) ([]model.Post, error) {
	posts, err := s.posts.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get returns a single post owned by the caller.
func (s *postService) Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Post, error) {
	return s.findOwned(ctx, caller, id)
}

// Update applies only the fields that were supplied. A nil pointer means
// "leave unchanged"; a non-nil pointer is applied even when it holds an
// empty value. The updated timestamp always refreshes.
func (s *postService) Update(ctx context.Context, caller *model.User, id uuid.UUID, title *string, content *model.Document) (*model.Post, error) {
	post, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Publish moves the post to published. Publishing an already-published post
// is a no-op state-wise but still refreshes the updated timestamp.
func (s *postService) Publish(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Post, error) {
	post, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	post.Status = model.StatusPublished
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("publish post: %w", err)
	}
	return post, nil
}

// findOwned fetches the post and verifies the caller owns it. Existence is
// checked first; ownership failures are distinguishable from missing posts.
func (s *postService) findOwned(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if post.UserID != caller.ID {
		return nil, apperrors.ErrNotPostOwner
	}

	return post, nil
}
