package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/godutch/internal/auth"
	"github.com/mmynk/godutch/internal/ledger"
	"github.com/mmynk/godutch/internal/middleware"
	"github.com/mmynk/godutch/internal/storage/filestore"
	"github.com/mmynk/godutch/pkg/api"
	"github.com/mmynk/godutch/pkg/api/apiconnect"
)

// testServer runs all services over a file store in a temp dir.
type testServer struct {
	t      *testing.T
	dir    string
	url    string
	auth   apiconnect.AuthServiceClient
	ledger *ledger.Ledger
}

// testUser is a registered caller with clients that send its token.
type testUser struct {
	id       string
	groups   apiconnect.GroupServiceClient
	expenses apiconnect.ExpenseServiceClient
}

func setupTestServer(t *testing.T, opts ...ledger.Option) *testServer {
	t.Helper()

	dir := t.TempDir()
	store, err := filestore.New(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	l := ledger.New(store, opts...)

	authSvc := NewAuthService(auth.NewIdentityStore(store), auth.SHA256Deriver{}, jwtManager, logger)
	requireAuth := connect.WithInterceptors(middleware.RequireAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(l), requireAuth))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(l), requireAuth))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		t:      t,
		dir:    dir,
		url:    server.URL,
		auth:   apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		ledger: l,
	}
}

func (s *testServer) clientsFor(id, token string) *testUser {
	withToken := connect.WithInterceptors(middleware.BearerToken(token))
	return &testUser{
		id:       id,
		groups:   apiconnect.NewGroupServiceClient(http.DefaultClient, s.url, withToken),
		expenses: apiconnect.NewExpenseServiceClient(http.DefaultClient, s.url, withToken),
	}
}

func (s *testServer) register(device, password string) *testUser {
	s.t.Helper()
	resp, err := s.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		DeviceID: device,
		Password: password,
	}))
	if err != nil {
		s.t.Fatalf("Register failed: %v", err)
	}
	return s.clientsFor(resp.Msg.User.ID, resp.Msg.Token)
}

func requireCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%v)", want, connectErr.Code(), connectErr.Message())
	}
}
