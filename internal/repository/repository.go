package repository

import (
	"github.com/hzqoola/blog-service/internal/repository/contentful"
	"github.com/hzqoola/blog-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

type Repository struct {
	Contentful *contentful.ContentfulRepository
	Redis *redisrepo.RedisRepository
}

func New(client *contentful.Client, rdb *redis.Client) *Repository {
	return &Repository{
		Contentful: contentful.New(client),
		Redis: redisrepo.New(rdb),
	}
}
