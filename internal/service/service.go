package service

import (
	"context"

	"github.com/hzqoola/blog-service/internal/dto"
	"github.com/hzqoola/blog-service/internal/model"
	"github.com/hzqoola/blog-service/internal/repository"
	"go.uber.org/zap"
)

type Post interface {
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	FindByCategory(ctx context.Context, categorySlug string) ([]*model.Post, error)
	FindCategories(ctx context.Context) ([]*model.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	SitemapURLs(ctx context.Context) []dto.SitemapURL
}

type Comment interface {
	FindPostComments(ctx context.Context, postSlug string) ([]*model.Comment, error)
	Create(ctx context.Context, user *model.SessionUser, input dto.CreateCommentDto) (*model.Comment, error)
	Update(ctx context.Context, user *model.SessionUser, input dto.UpdateCommentDto) error
	Delete(ctx context.Context, user *model.SessionUser, input dto.DeleteCommentDto) error
}

type Service struct {
	Post
	Comment
}

func New(logger *zap.Logger, repo *repository.Repository) *Service {
	return &Service{
		Post: newPostService(logger, repo),
		Comment: newCommentService(logger, repo),
	}
}
