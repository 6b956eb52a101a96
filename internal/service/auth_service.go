package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/godutch/internal/auth"
	"github.com/mmynk/godutch/pkg/api"
	"github.com/mmynk/godutch/pkg/api/apiconnect"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	deriver       auth.Deriver
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, deriver auth.Deriver, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		deriver:       deriver,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Register creates a new identity for the device and password.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "device_id", req.Msg.DeviceID)

	cred, err := s.derive(req.Msg.DeviceID, req.Msg.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.authenticator.Register(ctx, cred)
	if err != nil {
		s.logger.Warn("Registration failed", "device_id", req.Msg.DeviceID, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID)
	return connect.NewResponse(&api.RegisterResponse{
		User:  toAPIUser(user),
		Token: token,
	}), nil
}

// Login authenticates a device and password and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "device_id", req.Msg.DeviceID)

	cred, err := s.derive(req.Msg.DeviceID, req.Msg.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.authenticator.Authenticate(ctx, cred)
	if err != nil {
		s.logger.Warn("Login failed", "device_id", req.Msg.DeviceID, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{
		User:  toAPIUser(user),
		Token: token,
	}), nil
}

func (s *AuthService) derive(deviceID, password string) (auth.Credential, error) {
	if deviceID == "" || password == "" {
		return auth.Credential{}, connect.NewError(connect.CodeInvalidArgument, errNoPassword)
	}
	cred, err := s.deriver.Derive(deviceID, password)
	if err != nil {
		return auth.Credential{}, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return cred, nil
}
