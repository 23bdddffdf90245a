package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hzqoola/blog-service/internal/dto"
	"github.com/hzqoola/blog-service/internal/model"
	"github.com/hzqoola/blog-service/internal/repository"
	"github.com/hzqoola/blog-service/internal/repository/contentful"
	"github.com/hzqoola/blog-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const commentCacheTTL = time.Minute * 5

type commentService struct {
	logger *zap.Logger
	repo *repository.Repository
	ownerEmail string
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo: repo,
		ownerEmail: viper.GetString("owner.email"),
	}
}

func (s *commentService) FindPostComments(ctx context.Context, postSlug string) ([]*model.Comment, error) {
	postSlug = strings.TrimSpace(postSlug)
	if postSlug == "" {
		return nil, ErrPostSlugRequired
	}

	cachedComments, err := redisrepo.GetMany[model.Comment](s.repo.Redis.Default, ctx, redisrepo.PostCommentsKey(postSlug))
	if err == nil {
		if cachedComments == nil {
			cachedComments = []*model.Comment{}
		}
		return cachedComments, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%s) comments from redis: %s", postSlug, err.Error())
		return nil, ErrInternal
	}

	comments, err := s.repo.Contentful.Comment.FindByPostSlug(ctx, postSlug)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) comments from contentful: %s", postSlug, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostCommentsKey(postSlug), comments, commentCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%s) comments in redis: %s", postSlug, err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}

func (s *commentService) Create(ctx context.Context, user *model.SessionUser, input dto.CreateCommentDto) (*model.Comment, error) {
	message := strings.TrimSpace(input.Message)
	postSlug := strings.TrimSpace(input.PostSlug)
	if message == "" {
		return nil, ErrMessageRequired
	}
	if postSlug == "" {
		return nil, ErrPostSlugRequired
	}

	comment := model.Comment{
		Name: strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Message: message,
		PostSlug: postSlug,
		UserImage: input.UserImage,
	}
	// The signed-in identity wins over whatever the form carried.
	if user != nil {
		comment.Name = user.Name
		comment.Email = user.Email
		comment.UserImage = user.AvatarURL
	}
	if comment.Name == "" {
		comment.Name = "Guest"
	}

	createdComment, err := s.repo.Contentful.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment on post(%s): %s", postSlug, err.Error())
		return nil, ErrInternal
	}

	s.invalidateComments(ctx, postSlug)

	return createdComment, nil
}

func (s *commentService) Update(ctx context.Context, user *model.SessionUser, input dto.UpdateCommentDto) error {
	if user == nil || user.Email == "" {
		return ErrUnauthorized
	}

	commentID := strings.TrimSpace(input.CommentID)
	if commentID == "" {
		return ErrCommentIDRequired
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return ErrMessageRequired
	}

	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}

	// Editing is for the comment's author only; the blog owner does not get
	// to rewrite other people's words.
	if user.Email != comment.Email {
		return ErrForbidden
	}

	if _, err := s.repo.Contentful.Comment.Update(ctx, commentID, message); err != nil {
		if errors.Is(err, contentful.ErrNotFound) {
			return ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to update comment(%s): %s", commentID, err.Error())
		return ErrInternal
	}

	s.invalidateComments(ctx, comment.PostSlug)

	return nil
}

func (s *commentService) Delete(ctx context.Context, user *model.SessionUser, input dto.DeleteCommentDto) error {
	if user == nil || user.Email == "" {
		return ErrUnauthorized
	}

	commentID := strings.TrimSpace(input.CommentID)
	if commentID == "" {
		return ErrCommentIDRequired
	}

	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}

	isOwner := user.Email == s.ownerEmail
	isAuthor := user.Email == comment.Email
	if !isOwner && !isAuthor {
		return ErrForbidden
	}

	if err := s.repo.Contentful.Comment.Delete(ctx, commentID); err != nil {
		if errors.Is(err, contentful.ErrNotFound) {
			return ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to delete comment(%s): %s", commentID, err.Error())
		return ErrInternal
	}

	s.invalidateComments(ctx, comment.PostSlug)

	return nil
}

func (s *commentService) findComment(ctx context.Context, commentID string) (*model.Comment, error) {
	comment, err := s.repo.Contentful.Comment.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, contentful.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%s) from contentful: %s", commentID, err.Error())
		return nil, ErrInternal
	}

	return comment, nil
}

func (s *commentService) invalidateComments(ctx context.Context, postSlug string) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostCommentsKey(postSlug)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate post(%s) comments cache: %s", postSlug, err.Error())
	}
}
