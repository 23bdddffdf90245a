package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hzqoola/blog-service/pkg/reconcile"
)

func TestListCommentsMapsResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/comments/my-post" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"c1","name":"Ann","email":"ann@x.com","message":"hi","post_slug":"my-post","user_image":"https://img/a.png","date":"2026-08-20T10:30:00Z"}]`))
	}))
	defer server.Close()

	comments, err := New(server.URL, "tok").ListComments(context.Background(), "my-post")
	if err != nil {
		t.Fatalf("ListComments() error: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}

	want := reconcile.Comment{
		ID:          reconcile.PersistentID("c1"),
		AuthorName:  "Ann",
		AuthorEmail: "ann@x.com",
		AuthorImage: "https://img/a.png",
		Message:     "hi",
		DisplayDate: "August 20, 2026",
	}
	if comments[0] != want {
		t.Fatalf("comment = %+v, want %+v", comments[0], want)
	}
}

func TestCreateCommentSendsBody(t *testing.T) {
	t.Parallel()

	var got createCommentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/comments" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"id":"c2"}`))
	}))
	defer server.Close()

	err := New(server.URL, "").CreateComment(context.Background(), "my-post", reconcile.Comment{
		AuthorName:  "Ann",
		AuthorEmail: "ann@x.com",
		Message:     "hi",
	})
	if err != nil {
		t.Fatalf("CreateComment() error: %v", err)
	}
	if got.PostSlug != "my-post" || got.Message != "hi" || got.Email != "ann@x.com" {
		t.Fatalf("request body = %+v", got)
	}
}

func TestDeleteCommentReportsHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok":false,"details":"forbidden"}`))
	}))
	defer server.Close()

	err := New(server.URL, "tok").DeleteComment(context.Background(), "c1")
	if err == nil {
		t.Fatal("DeleteComment() expected error for HTTP 403")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error = %v, want mention of 403", err)
	}
}
