package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/godutch/internal/auth"
	"github.com/mmynk/godutch/internal/ledger"
	"github.com/mmynk/godutch/internal/middleware"
	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/pkg/api"
	"github.com/mmynk/godutch/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	ledger *ledger.Ledger
}

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService over the given ledger.
func NewGroupService(l *ledger.Ledger) *GroupService {
	return &GroupService{ledger: l}
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received", "user_id", userID)

	group, err := s.ledger.CreateGroup(ctx, userID)
	if err != nil {
		slog.Error("CreateGroup failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "code", group.Code, "user_id", userID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// JoinGroup adds the caller to a group by code.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("JoinGroup request received", "code", req.Msg.Code, "user_id", userID)

	group, err := s.ledger.JoinGroup(ctx, req.Msg.Code, userID)
	if err != nil {
		slog.Warn("JoinGroup failed", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group joined", "code", group.Code, "members_count", len(group.Members))
	return connect.NewResponse(&api.JoinGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups returns the codes of every group the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	codes, err := s.ledger.ListGroupsFor(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListGroups successful", "count", len(codes))
	return connect.NewResponse(&api.ListGroupsResponse{Codes: codes}), nil
}

// GetGroup returns a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.ledger, req.Msg.Code, userID)
	if err != nil {
		slog.Warn("GetGroup failed", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// DeleteGroup removes a group. Only its creator may do this.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteGroup request received", "code", req.Msg.Code, "user_id", userID)

	if err := s.ledger.DeleteGroup(ctx, req.Msg.Code, userID); err != nil {
		slog.Warn("DeleteGroup failed", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "code", req.Msg.Code)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// caller returns the authenticated user of the request.
func caller(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// memberGroup loads a group and checks that userID belongs to it.
func memberGroup(ctx context.Context, l *ledger.Ledger, code, userID string) (*models.Group, error) {
	group, err := l.Group(ctx, code)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, errNotMember
	}
	return group, nil
}
