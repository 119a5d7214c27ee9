package api

import (
	"testing"
	"time"

	"github.com/diogo/coinchat/internal/models"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name         string
		opts         []ClientOption
		wantBaseURL  string
		wantEndpoint string
		wantTimeout  time.Duration
	}{
		{
			name:         "defaults",
			wantBaseURL:  models.DefaultServerURL,
			wantEndpoint: "http://127.0.0.1:8000/analyze/",
		},
		{
			name:         "custom base url",
			opts:         []ClientOption{WithBaseURL("https://analysis.example.com")},
			wantBaseURL:  "https://analysis.example.com",
			wantEndpoint: "https://analysis.example.com/analyze/",
		},
		{
			name:         "base url with trailing slash",
			opts:         []ClientOption{WithBaseURL("http://localhost:9000/")},
			wantBaseURL:  "http://localhost:9000/",
			wantEndpoint: "http://localhost:9000/analyze/",
		},
		{
			name:         "empty base url keeps default",
			opts:         []ClientOption{WithBaseURL("")},
			wantBaseURL:  models.DefaultServerURL,
			wantEndpoint: "http://127.0.0.1:8000/analyze/",
		},
		{
			name:         "with timeout",
			opts:         []ClientOption{WithTimeout(5 * time.Second)},
			wantBaseURL:  models.DefaultServerURL,
			wantEndpoint: "http://127.0.0.1:8000/analyze/",
			wantTimeout:  5 * time.Second,
		},
		{
			name:         "with proxy",
			opts:         []ClientOption{WithProxy("http://127.0.0.1:3128")},
			wantBaseURL:  models.DefaultServerURL,
			wantEndpoint: "http://127.0.0.1:8000/analyze/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts...)
			if err != nil {
				t.Fatalf("NewClient() unexpected error: %v", err)
			}
			defer client.Close()

			if client.BaseURL() != tt.wantBaseURL {
				t.Errorf("BaseURL() = %s, want %s", client.BaseURL(), tt.wantBaseURL)
			}
			if client.Endpoint() != tt.wantEndpoint {
				t.Errorf("Endpoint() = %s, want %s", client.Endpoint(), tt.wantEndpoint)
			}
			if client.timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", client.timeout, tt.wantTimeout)
			}
			if client.httpClient == nil {
				t.Error("httpClient should be created")
			}
		})
	}
}

func TestNewClient_WithHTTPClient(t *testing.T) {
	mock := NewMockHttpClient([]byte(`{}`), 200)

	client, err := NewClient(WithHTTPClient(mock))
	if err != nil {
		t.Fatalf("NewClient() unexpected error: %v", err)
	}

	if client.httpClient != mock {
		t.Error("injected HTTP client should be used")
	}
}

func TestClient_Close(t *testing.T) {
	mock := NewMockHttpClient([]byte(`{}`), 200)
	client, _ := NewClient(WithHTTPClient(mock))

	if client.IsClosed() {
		t.Fatal("new client should not be closed")
	}

	client.Close()
	client.Close()

	if !client.IsClosed() {
		t.Error("client should be closed")
	}
	if mock.ClosedIdles != 1 {
		t.Errorf("CloseIdleConnections called %d times, want 1", mock.ClosedIdles)
	}
}
