package contentful

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/hzqoola/blog-service/internal/model"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentPages = 4

type postRepo struct {
	client *Client
}

func newPostRepo(client *Client) Post {
	return &postRepo{
		client: client,
	}
}

type postFields struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	Slug     string `json:"slug"`
	ReadTime string `json:"readTime"`
	Category string `json:"category"`
}

type categoryFields struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	query := url.Values{}
	query.Set("content_type", "blogPost")
	query.Set("order", "-fields.date")

	entries, err := r.fetchAllPages(ctx, query)
	if err != nil {
		return nil, err
	}

	return postsFromEntries(entries)
}

func (r *postRepo) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	query := url.Values{}
	query.Set("content_type", "blogPost")
	query.Set("fields.slug", slug)
	query.Set("limit", "1")

	var resp entriesResponse
	if err := r.client.getDelivery(ctx, "/entries?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	return postFromEntry(resp.Items[0])
}

func (r *postRepo) FindByCategory(ctx context.Context, categorySlug string) ([]*model.Post, error) {
	query := url.Values{}
	query.Set("content_type", "blogPost")
	query.Set("fields.category", categorySlug)
	query.Set("order", "-fields.date")

	entries, err := r.fetchAllPages(ctx, query)
	if err != nil {
		return nil, err
	}

	return postsFromEntries(entries)
}

func (r *postRepo) FindCategories(ctx context.Context) ([]*model.Category, error) {
	query := url.Values{}
	query.Set("content_type", "category")
	query.Set("order", "fields.name")

	entries, err := r.fetchAllPages(ctx, query)
	if err != nil {
		return nil, err
	}

	categories := make([]*model.Category, 0, len(entries))
	for _, entry := range entries {
		category, err := categoryFromEntry(entry)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (r *postRepo) FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	query := url.Values{}
	query.Set("content_type", "category")
	query.Set("fields.slug", slug)
	query.Set("limit", "1")

	var resp entriesResponse
	if err := r.client.getDelivery(ctx, "/entries?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	return categoryFromEntry(resp.Items[0])
}

// fetchAllPages pulls every page of a delivery query. The first page reports
// the total, remaining pages are fetched concurrently and stitched back in
// query order.
func (r *postRepo) fetchAllPages(ctx context.Context, query url.Values) ([]deliveryEntry, error) {
	query.Set("limit", strconv.Itoa(pageSize))

	var first entriesResponse
	if err := r.client.getDelivery(ctx, "/entries?"+query.Encode(), &first); err != nil {
		return nil, err
	}

	entries := first.Items
	if first.Total <= len(entries) {
		return entries, nil
	}

	pages := (first.Total + pageSize - 1) / pageSize
	pageItems := make([][]deliveryEntry, pages)
	pageItems[0] = first.Items
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)

	for page := 1; page < pages; page++ {
		page := page
		g.Go(func() error {
			pageQuery := url.Values{}
			for key, values := range query {
				pageQuery[key] = values
			}
			pageQuery.Set("skip", strconv.Itoa(page*pageSize))

			var resp entriesResponse
			if err := r.client.getDelivery(gctx, "/entries?"+pageQuery.Encode(), &resp); err != nil {
				return err
			}

			mu.Lock()
			pageItems[page] = resp.Items
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries = entries[:0]
	for _, items := range pageItems {
		entries = append(entries, items...)
	}

	return entries, nil
}

func postsFromEntries(entries []deliveryEntry) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(entries))
	for _, entry := range entries {
		post, err := postFromEntry(entry)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func postFromEntry(entry deliveryEntry) (*model.Post, error) {
	var fields postFields
	if err := json.Unmarshal(entry.Fields, &fields); err != nil {
		return nil, fmt.Errorf("decoding post entry %s: %w", entry.Sys.ID, err)
	}

	return &model.Post{
		ID: entry.Sys.ID,
		Title: fields.Title,
		Excerpt: fields.Excerpt,
		Content: fields.Content,
		Date: formatDate(fields.Date),
		Slug: fields.Slug,
		ReadTime: fields.ReadTime,
		Category: fields.Category,
	}, nil
}

func categoryFromEntry(entry deliveryEntry) (*model.Category, error) {
	var fields categoryFields
	if err := json.Unmarshal(entry.Fields, &fields); err != nil {
		return nil, fmt.Errorf("decoding category entry %s: %w", entry.Sys.ID, err)
	}

	return &model.Category{
		Slug: fields.Slug,
		Name: fields.Name,
		Description: fields.Description,
	}, nil
}

func formatDate(value string) string {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return parsed.Format("January 2, 2006")
}
