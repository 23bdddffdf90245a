package contentful

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hzqoola/blog-service/internal/config"
	"github.com/hzqoola/blog-service/internal/model"
)

const testPrefix = "/spaces/sp/environments/master"

type recordedRequest struct {
	Method  string
	Path    string
	Version string
}

// newTestClient wires a Client against a mock Contentful server and records
// every request it receives.
func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, recordedRequest{
			Method:  r.Method,
			Path:    strings.TrimPrefix(r.URL.Path, testPrefix),
			Version: r.Header.Get("X-Contentful-Version"),
		})
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.ContentfulConfig{
		SpaceID:         "sp",
		DeliveryToken:   "delivery-token",
		ManagementToken: "management-token",
	})
	client.deliveryBase = server.URL
	client.managementBase = server.URL

	return client, &requests
}

func writeEntry(w http.ResponseWriter, id string, version int, publishedVersion int) {
	entry := managementEntry{
		Sys: entrySys{ID: id, Version: version, PublishedVersion: publishedVersion},
		Fields: map[string]map[string]interface{}{
			"name":     {defaultLocale: "A"},
			"email":    {defaultLocale: "a@x.com"},
			"message":  {defaultLocale: "hi"},
			"postSlug": {defaultLocale: "my-post"},
			"date":     {defaultLocale: "2026-08-01T10:00:00Z"},
		},
	}
	json.NewEncoder(w).Encode(entry)
}

func TestDeleteUnpublishesBeforeDeleting(t *testing.T) {
	t.Parallel()

	version := 5
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			writeEntry(w, "c1", version, 4)
		case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/published"):
			version++
			writeEntry(w, "c1", version, 0)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	repo := newCommentRepo(client)
	if err := repo.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	want := []recordedRequest{
		{Method: http.MethodGet, Path: "/entries/c1"},
		{Method: http.MethodDelete, Path: "/entries/c1/published", Version: "5"},
		{Method: http.MethodDelete, Path: "/entries/c1", Version: "6"},
	}
	if len(*requests) != len(want) {
		t.Fatalf("requests = %+v, want %+v", *requests, want)
	}
	for i, req := range *requests {
		if req.Method != want[i].Method || req.Path != want[i].Path {
			t.Fatalf("request %d = %s %s, want %s %s", i, req.Method, req.Path, want[i].Method, want[i].Path)
		}
		if want[i].Version != "" && req.Version != want[i].Version {
			t.Fatalf("request %d version = %q, want %q", i, req.Version, want[i].Version)
		}
	}
}

func TestDeleteSkipsUnpublishForDraft(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeEntry(w, "c1", 2, 0)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	repo := newCommentRepo(client)
	if err := repo.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	for _, req := range *requests {
		if strings.HasSuffix(req.Path, "/published") {
			t.Fatalf("draft entry was unpublished: %+v", *requests)
		}
	}
}

func TestDeleteMissingEntryIsNotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	repo := newCommentRepo(client)
	if err := repo.Delete(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestCreatePublishesNewEntry(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if got := r.Header.Get("X-Contentful-Content-Type"); got != commentContentType {
				t.Errorf("X-Contentful-Content-Type = %q, want %q", got, commentContentType)
			}
			writeEntry(w, "new1", 1, 0)
		case http.MethodPut:
			writeEntry(w, "new1", 2, 2)
		}
	})

	repo := newCommentRepo(client)
	created, err := repo.Create(context.Background(), testComment())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if created.ID != "new1" {
		t.Fatalf("created.ID = %q, want %q", created.ID, "new1")
	}
	if !created.Published {
		t.Fatal("created comment not marked published")
	}

	want := []recordedRequest{
		{Method: http.MethodPost, Path: "/entries"},
		{Method: http.MethodPut, Path: "/entries/new1/published", Version: "1"},
	}
	for i, req := range *requests {
		if req.Method != want[i].Method || req.Path != want[i].Path || req.Version != want[i].Version {
			t.Fatalf("request %d = %+v, want %+v", i, req, want[i])
		}
	}
}

func TestUpdateSendsVersionAndRepublishes(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			writeEntry(w, "c1", 7, 6)
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/published"):
			writeEntry(w, "c1", 8, 8)
		case r.Method == http.MethodPut:
			var body struct {
				Fields map[string]map[string]interface{} `json:"fields"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decoding update body: %v", err)
			}
			if got := body.Fields["message"][defaultLocale]; got != "hello" {
				t.Errorf("updated message = %v, want %q", got, "hello")
			}
			writeEntry(w, "c1", 8, 6)
		}
	})

	repo := newCommentRepo(client)
	if _, err := repo.Update(context.Background(), "c1", "hello"); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	want := []recordedRequest{
		{Method: http.MethodGet, Path: "/entries/c1"},
		{Method: http.MethodPut, Path: "/entries/c1", Version: "7"},
		{Method: http.MethodPut, Path: "/entries/c1/published", Version: "8"},
	}
	if len(*requests) != len(want) {
		t.Fatalf("requests = %+v, want %+v", *requests, want)
	}
	for i, req := range *requests {
		if req != want[i] {
			t.Fatalf("request %d = %+v, want %+v", i, req, want[i])
		}
	}
}

func TestFindByPostSlugQueriesDeliveryAPI(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("content_type"); got != commentContentType {
			t.Errorf("content_type = %q, want %q", got, commentContentType)
		}
		if got := query.Get("fields.postSlug"); got != "my-post" {
			t.Errorf("fields.postSlug = %q, want %q", got, "my-post")
		}
		if got := r.Header.Get("Authorization"); got != "Bearer delivery-token" {
			t.Errorf("Authorization = %q, want delivery token", got)
		}

		fields, _ := json.Marshal(commentFields{
			Name: "A", Email: "a@x.com", Message: "hi", PostSlug: "my-post",
			Date: "2026-08-01T10:00:00Z",
		})
		resp := entriesResponse{
			Total: 1,
			Items: []deliveryEntry{{Sys: entrySys{ID: "c1"}, Fields: fields}},
		}
		json.NewEncoder(w).Encode(resp)
	})

	repo := newCommentRepo(client)
	comments, err := repo.FindByPostSlug(context.Background(), "my-post")
	if err != nil {
		t.Fatalf("FindByPostSlug() error: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != "c1" || comments[0].Message != "hi" {
		t.Fatalf("FindByPostSlug() = %+v", comments)
	}
}

func testComment() model.Comment {
	return model.Comment{
		Name: "A",
		Email: "a@x.com",
		Message: "hi",
		PostSlug: "my-post",
	}
}
