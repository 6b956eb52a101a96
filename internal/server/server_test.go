package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/godutch/internal/auth"
	"github.com/mmynk/godutch/internal/config"
	"github.com/mmynk/godutch/internal/ledger"
	"github.com/mmynk/godutch/internal/middleware"
	"github.com/mmynk/godutch/pkg/api"
	"github.com/mmynk/godutch/pkg/api/apiconnect"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Storage.Dir = t.TempDir()

	store, err := OpenStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(Deps{
		Store:      store,
		Ledger:     ledger.New(store),
		Deriver:    auth.SHA256Deriver{},
		JWTManager: auth.NewJWTManager("test-secret", time.Hour),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry:   prometheus.NewRegistry(),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestServer_EndToEnd(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	authClient := apiconnect.NewAuthServiceClient(http.DefaultClient, srv.URL)
	reg, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{DeviceID: "dev", Password: "pw"}))
	require.NoError(t, err)

	withToken := connect.WithInterceptors(middleware.BearerToken(reg.Msg.Token))
	groups := apiconnect.NewGroupServiceClient(http.DefaultClient, srv.URL, withToken)

	created, err := groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{}))
	require.NoError(t, err)
	assert.Equal(t, reg.Msg.User.ID, created.Msg.Group.Creator)

	// without a token the protected services refuse
	anon := apiconnect.NewGroupServiceClient(http.DefaultClient, srv.URL)
	_, err = anon.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)

	authClient := apiconnect.NewAuthServiceClient(http.DefaultClient, srv.URL)
	_, err := authClient.Login(context.Background(), connect.NewRequest(&api.LoginRequest{DeviceID: "dev", Password: "nope"}))
	require.Error(t, err)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `godutch_rpc_requests_total{code="unauthenticated",procedure="/godutch.v1.AuthService/Login"} 1`)
	assert.True(t, strings.Contains(string(body), "godutch_rpc_duration_seconds"))
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(&config.Config{Storage: config.StorageConfig{Driver: "postgres"}})
	assert.Error(t, err)
}
