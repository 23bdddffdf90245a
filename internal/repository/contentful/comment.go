package contentful

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hzqoola/blog-service/internal/model"
)

const commentContentType = "comment"

type commentRepo struct {
	client *Client
}

func newCommentRepo(client *Client) Comment {
	return &commentRepo{
		client: client,
	}
}

type commentFields struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	PostSlug  string `json:"postSlug"`
	UserImage string `json:"userImage"`
	Date      string `json:"date"`
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.Date = time.Now().UTC()

	body := map[string]interface{}{
		"fields": localizedCommentFields(comment),
	}

	var created managementEntry
	if err := r.client.manage(ctx, http.MethodPost, "/entries", 0, commentContentType, body, &created); err != nil {
		return nil, err
	}

	// A freshly created entry is a draft; comments become visible immediately,
	// so publish right away.
	if err := r.publish(ctx, created.Sys.ID, created.Sys.Version); err != nil {
		return nil, err
	}

	comment.ID = created.Sys.ID
	comment.Published = true
	return &comment, nil
}

func (r *commentRepo) FindByPostSlug(ctx context.Context, postSlug string) ([]*model.Comment, error) {
	query := url.Values{}
	query.Set("content_type", commentContentType)
	query.Set("fields.postSlug", postSlug)
	query.Set("order", "-fields.date")

	var resp entriesResponse
	if err := r.client.getDelivery(ctx, "/entries?"+query.Encode(), &resp); err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, 0, len(resp.Items))
	for _, entry := range resp.Items {
		var fields commentFields
		if err := json.Unmarshal(entry.Fields, &fields); err != nil {
			return nil, fmt.Errorf("decoding comment entry %s: %w", entry.Sys.ID, err)
		}

		date, _ := time.Parse(time.RFC3339, fields.Date)
		comments = append(comments, &model.Comment{
			ID: entry.Sys.ID,
			Name: fields.Name,
			Email: fields.Email,
			Message: fields.Message,
			PostSlug: fields.PostSlug,
			UserImage: fields.UserImage,
			Date: date,
			Published: true,
		})
	}

	return comments, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	entry, err := r.getEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	return commentFromManagementEntry(entry), nil
}

func (r *commentRepo) Update(ctx context.Context, id string, message string) (*model.Comment, error) {
	entry, err := r.getEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Fields == nil {
		entry.Fields = make(map[string]map[string]interface{})
	}
	entry.Fields["message"] = map[string]interface{}{defaultLocale: message}

	body := map[string]interface{}{
		"fields": entry.Fields,
	}

	var updated managementEntry
	if err := r.client.manage(ctx, http.MethodPut, "/entries/"+id, entry.Sys.Version, "", body, &updated); err != nil {
		return nil, err
	}

	if err := r.publish(ctx, updated.Sys.ID, updated.Sys.Version); err != nil {
		return nil, err
	}

	return commentFromManagementEntry(&updated), nil
}

// Delete unpublishes the entry first when it is published: the management API
// refuses to delete an entry that still has a published version.
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	entry, err := r.getEntry(ctx, id)
	if err != nil {
		return err
	}

	version := entry.Sys.Version
	if entry.Sys.PublishedVersion != 0 {
		var unpublished managementEntry
		if err := r.client.manage(ctx, http.MethodDelete, "/entries/"+id+"/published", version, "", nil, &unpublished); err != nil {
			return err
		}
		version = unpublished.Sys.Version
	}

	return r.client.manage(ctx, http.MethodDelete, "/entries/"+id, version, "", nil, nil)
}

func (r *commentRepo) getEntry(ctx context.Context, id string) (*managementEntry, error) {
	var entry managementEntry
	if err := r.client.manage(ctx, http.MethodGet, "/entries/"+id, 0, "", nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *commentRepo) publish(ctx context.Context, id string, version int) error {
	return r.client.manage(ctx, http.MethodPut, "/entries/"+id+"/published", version, "", nil, &managementEntry{})
}

func localizedCommentFields(comment model.Comment) map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		"name":      {defaultLocale: comment.Name},
		"email":     {defaultLocale: comment.Email},
		"message":   {defaultLocale: comment.Message},
		"postSlug":  {defaultLocale: comment.PostSlug},
		"userImage": {defaultLocale: comment.UserImage},
		"date":      {defaultLocale: comment.Date.Format(time.RFC3339)},
	}
}

func commentFromManagementEntry(entry *managementEntry) *model.Comment {
	date, _ := time.Parse(time.RFC3339, entry.stringField("date"))

	return &model.Comment{
		ID: entry.Sys.ID,
		Name: entry.stringField("name"),
		Email: entry.stringField("email"),
		Message: entry.stringField("message"),
		PostSlug: entry.stringField("postSlug"),
		UserImage: entry.stringField("userImage"),
		Date: date,
		Published: entry.Sys.PublishedVersion != 0,
	}
}
