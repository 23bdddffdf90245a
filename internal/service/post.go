package service

import (
	"context"
	"time"

	"github.com/hzqoola/blog-service/internal/dto"
	"github.com/hzqoola/blog-service/internal/model"
	"github.com/hzqoola/blog-service/internal/repository"
	"github.com/hzqoola/blog-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const postCacheTTL = time.Hour

type postService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo: repo,
	}
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.AllPostsKey())
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get posts from redis: %s", err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Contentful.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts from contentful: %s", err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.AllPostsKey(), posts, postCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set posts in redis: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	cachedPost, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostKey(slug))
	if err == nil {
		if cachedPost == nil {
			return nil, ErrPostNotFound
		}
		return cachedPost, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%s) from redis: %s", slug, err.Error())
		return nil, ErrInternal
	}

	post, err := s.repo.Contentful.Post.FindBySlug(ctx, slug)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) from contentful: %s", slug, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(slug), post, postCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%s) in redis: %s", slug, err.Error())
		return nil, ErrInternal
	}

	if post == nil {
		return nil, ErrPostNotFound
	}

	return post, nil
}

func (s *postService) FindByCategory(ctx context.Context, categorySlug string) ([]*model.Post, error) {
	if _, err := s.FindCategoryBySlug(ctx, categorySlug); err != nil {
		return nil, err
	}

	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.CategoryPostsKey(categorySlug))
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get category(%s) posts from redis: %s", categorySlug, err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Contentful.Post.FindByCategory(ctx, categorySlug)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find category(%s) posts from contentful: %s", categorySlug, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.CategoryPostsKey(categorySlug), posts, postCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set category(%s) posts in redis: %s", categorySlug, err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) FindCategories(ctx context.Context) ([]*model.Category, error) {
	cachedCategories, err := redisrepo.GetMany[model.Category](s.repo.Redis.Default, ctx, redisrepo.CategoriesKey())
	if err == nil {
		return cachedCategories, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get categories from redis: %s", err.Error())
		return nil, ErrInternal
	}

	categories, err := s.repo.Contentful.Post.FindCategories(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find categories from contentful: %s", err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.CategoriesKey(), categories, postCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set categories in redis: %s", err.Error())
		return nil, ErrInternal
	}

	return categories, nil
}

func (s *postService) FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	cachedCategory, err := redisrepo.Get[model.Category](s.repo.Redis.Default, ctx, redisrepo.CategoryKey(slug))
	if err == nil {
		if cachedCategory == nil {
			return nil, ErrCategoryNotFound
		}
		return cachedCategory, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get category(%s) from redis: %s", slug, err.Error())
		return nil, ErrInternal
	}

	category, err := s.repo.Contentful.Post.FindCategoryBySlug(ctx, slug)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find category(%s) from contentful: %s", slug, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.CategoryKey(slug), category, postCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set category(%s) in redis: %s", slug, err.Error())
		return nil, ErrInternal
	}

	if category == nil {
		return nil, ErrCategoryNotFound
	}

	return category, nil
}

// SitemapURLs lists the static routes plus one URL per post. When the post
// list cannot be fetched the static routes are still returned, so the
// sitemap never goes missing entirely.
func (s *postService) SitemapURLs(ctx context.Context) []dto.SitemapURL {
	baseURL := viper.GetString("app.base_url")
	now := time.Now().Format(time.DateOnly)

	urls := []dto.SitemapURL{
		{Loc: baseURL, LastMod: now, ChangeFreq: "yearly", Priority: "1.0"},
		{Loc: baseURL + "/blog", LastMod: now, ChangeFreq: "weekly", Priority: "0.9"},
		{Loc: baseURL + "/about", LastMod: now, ChangeFreq: "yearly", Priority: "0.5"},
	}

	posts, err := s.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list posts for sitemap: %s", err.Error())
		return urls
	}

	for _, post := range posts {
		lastMod := ""
		if parsed, err := time.Parse("January 2, 2006", post.Date); err == nil {
			lastMod = parsed.Format(time.DateOnly)
		}
		urls = append(urls, dto.SitemapURL{
			Loc: baseURL + "/blog/" + post.Slug,
			LastMod: lastMod,
			ChangeFreq: "monthly",
			Priority: "0.8",
		})
	}

	return urls
}
