package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

func TestLoginDecodesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"user":{"id":"u1","name":"Ana","email":"ana@example.com"}}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !resp.Success {
		t.Fatal("Success = false, want true")
	}
	if resp.User == nil || resp.User.ID != "u1" {
		t.Fatalf("User = %+v, want id u1", resp.User)
	}
}

func TestLoginLogicalFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid email or password"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "wrong"})
	if err != nil {
		t.Fatalf("a 4xx envelope must decode, not error: %v", err)
	}
	if resp.Success {
		t.Fatal("Success = true, want false")
	}
	if resp.Message != "Invalid email or password" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestDashboardServerErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Dashboard(context.Background()); err == nil {
		t.Fatal("expected error for status 500")
	}
}

func TestDashboardTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	if _, err := New(srv.URL).Dashboard(context.Background()); err == nil {
		t.Fatal("expected error for unreachable backend")
	}
}

func TestPredictRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"prediction":1,"label":"good","model_version":"1.0"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Predict(context.Background(), domain.PredictionInput{UserID: "u1", Quantity: 3, SalesPrice: 12.5})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if resp.Label != domain.LabelGood || resp.ModelVersion != "1.0" {
		t.Fatalf("resp = %+v", resp)
	}
}
