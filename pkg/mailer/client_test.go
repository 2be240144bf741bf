package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nishantpawar/institute-backend/pkg/config"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(config.MailerConfig{
		APIKey:      "sg-test-key",
		DefaultFrom: "noreply@institute.example",
		FromName:    "Tech Institute",
	}, logg, WithBaseURL(baseURL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestSendSuccess(t *testing.T) {
	var captured sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sg-test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	if err := client.Send(context.Background(), "student@example.com", "New announcement", "<p>hello</p>"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if len(captured.Personalizations) != 1 || len(captured.Personalizations[0].To) != 1 {
		t.Fatalf("unexpected personalizations %+v", captured.Personalizations)
	}
	if captured.Personalizations[0].To[0].Email != "student@example.com" {
		t.Fatalf("unexpected recipient %+v", captured.Personalizations[0].To[0])
	}
	if captured.From.Email != "noreply@institute.example" {
		t.Fatalf("unexpected from %+v", captured.From)
	}
	if captured.Content[0].Type != "text/html" {
		t.Fatalf("expected html content, got %+v", captured.Content)
	}
}

func TestSendMapsAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	err := client.Send(context.Background(), "student@example.com", "subject", "<p>x</p>")
	if err == nil {
		t.Fatal("expected error on api failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestSendValidation(t *testing.T) {
	client := testClient(t, "http://unused.invalid")

	if err := client.Send(context.Background(), "", "subject", "body"); err == nil {
		t.Fatal("expected missing recipient to fail")
	}
	if err := client.Send(context.Background(), "a@b.c", "", "body"); err == nil {
		t.Fatal("expected missing subject to fail")
	}
}

func TestNewClientValidation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	if _, err := NewClient(config.MailerConfig{DefaultFrom: "a@b.c"}, logg); err == nil {
		t.Fatal("expected missing api key to fail")
	}
	if _, err := NewClient(config.MailerConfig{APIKey: "k"}, logg); err == nil {
		t.Fatal("expected missing from address to fail")
	}
	if _, err := NewClient(config.MailerConfig{APIKey: "k", DefaultFrom: "a@b.c"}, nil); err == nil {
		t.Fatal("expected nil logger to fail")
	}
}
