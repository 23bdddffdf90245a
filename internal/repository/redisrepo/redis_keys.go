package redisrepo

import "fmt"

const (
	POST_KEY = "post:%s" // <slug>
	ALL_POSTS_KEY = "posts:all"
	CATEGORY_POSTS_KEY = "category:%s-posts" // <categorySlug>
	CATEGORIES_KEY = "categories"
	CATEGORY_KEY = "category:%s" // <categorySlug>
	POST_COMMENTS_KEY = "post:%s-comments" // <postSlug>
)

func PostKey(slug string) string {
	return fmt.Sprintf(POST_KEY, slug)
}

func AllPostsKey() string {
	return ALL_POSTS_KEY
}

func CategoryPostsKey(categorySlug string) string {
	return fmt.Sprintf(CATEGORY_POSTS_KEY, categorySlug)
}

func CategoriesKey() string {
	return CATEGORIES_KEY
}

func CategoryKey(categorySlug string) string {
	return fmt.Sprintf(CATEGORY_KEY, categorySlug)
}

func PostCommentsKey(postSlug string) string {
	return fmt.Sprintf(POST_COMMENTS_KEY, postSlug)
}
