package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/apiclient"
	"github.com/salesai/dashboard-system/internal/webapp/session"
)

type stubPredictAPI struct {
	resp *apiclient.PredictResponse
	err  error
	got  domain.PredictionInput
}

func (s *stubPredictAPI) Predict(_ context.Context, req domain.PredictionInput) (*apiclient.PredictResponse, error) {
	s.got = req
	return s.resp, s.err
}

func record() *domain.SessionRecord {
	return &domain.SessionRecord{ID: "u1", Name: "Ana", Email: "ana@example.com"}
}

func TestPredictSubmitWithoutSession(t *testing.T) {
	p := NewPredictor(&stubPredictAPI{})

	out := p.Submit(context.Background(), nil, "3", "12.5")
	if !out.LoginRequired {
		t.Fatal("LoginRequired = false, want true")
	}
	if out.Redirect != "" {
		t.Errorf("unexpected redirect %q", out.Redirect)
	}
}

func TestPredictSubmitParsesFields(t *testing.T) {
	api := &stubPredictAPI{resp: &apiclient.PredictResponse{Success: true, Label: "good"}}
	p := NewPredictor(api)

	p.Submit(context.Background(), record(), "3", "12.5")
	if api.got.UserID != "u1" || api.got.Quantity != 3 || api.got.SalesPrice != 12.5 {
		t.Fatalf("request = %+v", api.got)
	}
}

func TestPredictSubmitRejectsNonNumeric(t *testing.T) {
	api := &stubPredictAPI{}
	p := NewPredictor(api)

	if out := p.Submit(context.Background(), record(), "three", "12.5"); out.Message == "" {
		t.Error("non-numeric quantity should produce a message")
	}
	if out := p.Submit(context.Background(), record(), "3", "cheap"); out.Message == "" {
		t.Error("non-numeric price should produce a message")
	}
	if api.got.UserID != "" {
		t.Error("backend was called with unparsed input")
	}
}

func TestPredictSubmitLabelRouting(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"good", ResultGoodPath},
		{"bad", ResultBadPath},
		// Anything unrecognized routes to the bad result page.
		{"excellent", ResultBadPath},
		{"", ResultBadPath},
	}

	for _, tc := range cases {
		p := NewPredictor(&stubPredictAPI{resp: &apiclient.PredictResponse{Success: true, Label: tc.label}})
		out := p.Submit(context.Background(), record(), "3", "12.5")
		if out.Redirect != tc.want {
			t.Errorf("label %q: redirect = %q, want %q", tc.label, out.Redirect, tc.want)
		}
	}
}

func TestPredictSubmitLogicalFailureUsesServerMessage(t *testing.T) {
	p := NewPredictor(&stubPredictAPI{resp: &apiclient.PredictResponse{Success: false, Message: "no trained model"}})

	out := p.Submit(context.Background(), record(), "3", "12.5")
	if out.Redirect != "" {
		t.Fatalf("unexpected redirect %q", out.Redirect)
	}
	if out.Message != "no trained model" {
		t.Errorf("Message = %q", out.Message)
	}
}

func TestPredictSubmitTransportFailure(t *testing.T) {
	p := NewPredictor(&stubPredictAPI{err: errors.New("timeout")})

	out := p.Submit(context.Background(), record(), "3", "12.5")
	if out.Redirect != "" || out.Message == "" {
		t.Fatalf("outcome = %+v, want inline message", out)
	}
}

type stubDeleteAPI struct {
	resp *apiclient.DeleteAccountResponse
	err  error
}

func (s *stubDeleteAPI) DeleteAccount(context.Context, string) (*apiclient.DeleteAccountResponse, error) {
	return s.resp, s.err
}

func seededStore(t *testing.T) session.Store {
	t.Helper()
	store := session.NewMemoryStore()
	if err := store.Set(context.Background(), "s1", *record(), session.DefaultTTL); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
	return store
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	store := seededStore(t)
	d := NewAccountDeleter(&stubDeleteAPI{}, store)

	out := d.Delete(context.Background(), "s1", record(), false)
	if out.Redirect != "" || out.Message == "" {
		t.Fatalf("outcome = %+v, want inline message", out)
	}
	if store.Get(context.Background(), "s1") == nil {
		t.Fatal("unconfirmed deletion mutated the session")
	}
}

func TestDeleteSuccessClearsSession(t *testing.T) {
	store := seededStore(t)
	d := NewAccountDeleter(&stubDeleteAPI{resp: &apiclient.DeleteAccountResponse{Success: true, PredictionsDeleted: 7}}, store)

	out := d.Delete(context.Background(), "s1", record(), true)
	if out.Redirect != SignupPath {
		t.Fatalf("Redirect = %q, want %q", out.Redirect, SignupPath)
	}
	if out.Message == "" {
		t.Error("success should report the removed prediction count")
	}
	if store.Get(context.Background(), "s1") != nil {
		t.Fatal("session record still present after account deletion")
	}
}

func TestDeleteFailureKeepsSession(t *testing.T) {
	store := seededStore(t)
	d := NewAccountDeleter(&stubDeleteAPI{resp: &apiclient.DeleteAccountResponse{Success: false, Message: "user not found"}}, store)

	out := d.Delete(context.Background(), "s1", record(), true)
	if out.Redirect != "" {
		t.Fatalf("unexpected redirect %q", out.Redirect)
	}
	if out.Message != "user not found" {
		t.Errorf("Message = %q", out.Message)
	}
	if store.Get(context.Background(), "s1") == nil {
		t.Fatal("failed deletion mutated the session")
	}
}

func TestDeleteTransportFailureKeepsSession(t *testing.T) {
	store := seededStore(t)
	d := NewAccountDeleter(&stubDeleteAPI{err: errors.New("connection refused")}, store)

	out := d.Delete(context.Background(), "s1", record(), true)
	if out.Redirect != "" || out.Message == "" {
		t.Fatalf("outcome = %+v, want inline message", out)
	}
	if store.Get(context.Background(), "s1") == nil {
		t.Fatal("failed deletion mutated the session")
	}
}

func TestDeleteWithoutSession(t *testing.T) {
	d := NewAccountDeleter(&stubDeleteAPI{}, session.NewMemoryStore())

	out := d.Delete(context.Background(), "s1", nil, true)
	if !out.LoginRequired {
		t.Fatal("LoginRequired = false, want true")
	}
}
