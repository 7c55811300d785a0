//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Success bool          `json:"success"`
	User    *userResponse `json:"user"`
}

type statusResponse struct {
	IsLoggedIn bool          `json:"isLoggedIn"`
	User       *userResponse `json:"user"`
}

type eventResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Organizer string `json:"organizer"`
	CreatorID string `json:"creatorId"`
}

type eventListResponse struct {
	Events []eventResponse `json:"events"`
}

type commentResponse struct {
	ID       string `json:"id"`
	EventID  string `json:"eventId"`
	UserName string `json:"userName"`
	Text     string `json:"text"`
}

type commentListResponse struct {
	Comments []commentResponse `json:"comments"`
}

// TestE2ESmoke walks the full register, post, comment, search and delete
// flow against a running server.
func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("TOWNBOARD_BASE_URL", "http://localhost:8080")

	alice := newSessionClient(t, baseURL)
	bob := newSessionClient(t, baseURL)

	// Unique emails so the test can re-run against a dirty database.
	suffix := ulid.Make().String()
	aliceUser := register(t, alice, "Alice", fmt.Sprintf("alice-%s@example.com", suffix))
	register(t, bob, "Bob", fmt.Sprintf("bob-%s@example.com", suffix))

	status := getJSON[statusResponse](t, alice, "/api/auth/status")
	if !status.IsLoggedIn || status.User.ID != aliceUser.ID {
		t.Fatalf("expected alice logged in, got %+v", status)
	}

	// Alice posts an event.
	event := postJSON[eventResponse](t, alice, "/api/events", map[string]string{
		"title":       "Smoke Test Picnic " + suffix,
		"description": "End to end smoke test event.",
		"date":        "2026-10-01",
		"time":        "12:00",
		"location":    "Test Meadow",
		"category":    "Community",
	}, http.StatusCreated)
	if event.CreatorID != aliceUser.ID {
		t.Fatalf("expected alice as creator, got %+v", event)
	}
	if event.Organizer != "Alice" {
		t.Fatalf("expected organizer default, got %q", event.Organizer)
	}

	// Bob comments on it.
	comment := postJSON[commentResponse](t, bob, "/api/events/"+event.ID+"/comments", map[string]string{
		"text": "Bob was here.",
	}, http.StatusCreated)
	if comment.UserName != "Bob" {
		t.Fatalf("expected Bob's name on comment, got %+v", comment)
	}

	// The comment shows up for everyone.
	comments := getJSON[commentListResponse](t, alice, "/api/events/"+event.ID+"/comments")
	if len(comments.Comments) != 1 || comments.Comments[0].ID != comment.ID {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	// Alice cannot delete Bob's comment.
	assertStatus(t, alice, http.MethodDelete, "/api/comments/"+comment.ID, nil, http.StatusForbidden)

	// Search finds the event by keyword.
	results := getJSON[eventListResponse](t, bob, "/api/events/search?keyword=picnic")
	if !containsEvent(results.Events, event.ID) {
		t.Fatalf("search did not find event %s", event.ID)
	}

	// Bob cannot delete Alice's event; Alice can, and the comments go too.
	assertStatus(t, bob, http.MethodDelete, "/api/events/"+event.ID, nil, http.StatusForbidden)
	assertStatus(t, alice, http.MethodDelete, "/api/events/"+event.ID, nil, http.StatusNoContent)
	assertStatus(t, alice, http.MethodGet, "/api/events/"+event.ID+"/comments", nil, http.StatusNotFound)

	// Logout ends the session.
	assertStatus(t, alice, http.MethodPost, "/api/auth/logout", nil, http.StatusOK)
	status = getJSON[statusResponse](t, alice, "/api/auth/status")
	if status.IsLoggedIn {
		t.Fatalf("expected alice logged out, got %+v", status)
	}
}

type sessionClient struct {
	base string
	http *http.Client
}

func newSessionClient(t *testing.T, baseURL string) *sessionClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &sessionClient{
		base: baseURL,
		http: &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

func (c *sessionClient) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func register(t *testing.T, c *sessionClient, name, email string) *userResponse {
	t.Helper()
	out := postJSON[authResponse](t, c, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "e2e-password",
	}, http.StatusCreated)
	if !out.Success || out.User == nil {
		t.Fatalf("unexpected register response: %+v", out)
	}
	return out.User
}

func postJSON[T any](t *testing.T, c *sessionClient, path string, body any, wantStatus int) T {
	t.Helper()
	resp := c.do(t, http.MethodPost, path, body)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s: status %d, body %s", path, resp.StatusCode, data)
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func getJSON[T any](t *testing.T, c *sessionClient, path string) T {
	t.Helper()
	resp := c.do(t, http.MethodGet, path, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: status %d, body %s", path, resp.StatusCode, data)
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func assertStatus(t *testing.T, c *sessionClient, method, path string, body any, wantStatus int) {
	t.Helper()
	resp := c.do(t, method, path, body)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: status %d, body %s", method, path, resp.StatusCode, data)
	}
}

func containsEvent(events []eventResponse, id string) bool {
	for _, e := range events {
		if e.ID == id {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
