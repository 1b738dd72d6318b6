package wordpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFindPostByTitleMatchesDecodedTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/posts" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("per_page = %s", r.URL.Query().Get("per_page"))
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("missing auth header")
		}
		// WordPress entity-encodes rendered titles.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "link": "https://blog.example/other", "title": {"rendered": "다른 글"}},
			{"id": 7, "link": "https://blog.example/weekly", "title": {"rendered": "9월 1주차 &amp; 요약"}}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", 5*time.Second)
	post, err := client.FindPostByTitle(context.Background(), "9월 1주차 & 요약")
	if err != nil {
		t.Fatal(err)
	}
	if post == nil || post.ID != 7 {
		t.Fatalf("post = %+v, want id 7", post)
	}
}

func TestFindPostByTitleNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", 5*time.Second)
	post, err := client.FindPostByTitle(context.Background(), "없는 글")
	if err != nil {
		t.Fatal(err)
	}
	if post != nil {
		t.Errorf("post = %+v, want nil", post)
	}
}

func TestCreateDraftPayload(t *testing.T) {
	var got draftPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42, "link": "https://blog.example/draft"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", 5*time.Second)
	post, err := client.CreateDraft(context.Background(), "주간 요약", "<p>본문</p>", 3, []int{10, 11})
	if err != nil {
		t.Fatal(err)
	}
	if post.ID != 42 {
		t.Errorf("id = %d", post.ID)
	}
	if got.Status != "draft" {
		t.Errorf("status = %q, want draft", got.Status)
	}
	if len(got.Categories) != 1 || got.Categories[0] != 3 {
		t.Errorf("categories = %v", got.Categories)
	}
	if len(got.Tags) != 2 {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestUpdateDraftHitsPostID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/posts/7" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"id": 7, "link": "https://blog.example/weekly"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", 5*time.Second)
	post, err := client.UpdateDraft(context.Background(), 7, "제목", "<p>수정</p>", 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if post.ID != 7 {
		t.Errorf("id = %d", post.ID)
	}
}

func TestWriteDraftErrorSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code": "rest_cannot_create"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", 5*time.Second)
	_, err := client.CreateDraft(context.Background(), "제목", "본문", 3, nil)
	if err == nil {
		t.Fatal("want error on 403")
	}
}
