package contentful

import (
	"context"

	"github.com/hzqoola/blog-service/internal/model"
)

type Post interface {
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	FindByCategory(ctx context.Context, categorySlug string) ([]*model.Post, error)
	FindCategories(ctx context.Context) ([]*model.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByPostSlug(ctx context.Context, postSlug string) ([]*model.Comment, error)
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	Update(ctx context.Context, id string, message string) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type ContentfulRepository struct {
	Post
	Comment
}

func New(client *Client) *ContentfulRepository {
	return &ContentfulRepository{
		Post: newPostRepo(client),
		Comment: newCommentRepo(client),
	}
}
