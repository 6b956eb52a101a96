package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/godutch/internal/calculator"
	"github.com/mmynk/godutch/internal/ledger"
	"github.com/mmynk/godutch/pkg/api"
	"github.com/mmynk/godutch/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	ledger *ledger.Ledger
}

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates a new ExpenseService over the given ledger.
func NewExpenseService(l *ledger.Ledger) *ExpenseService {
	return &ExpenseService{ledger: l}
}

// AddExpense records an expense paid by the caller.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddExpense request received",
		"code", req.Msg.Code,
		"amount", req.Msg.Amount,
		"split_count", len(req.Msg.SplitWith),
	)

	amount, err := decimal.NewFromString(req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errBadAmount)
	}

	if _, err := memberGroup(ctx, s.ledger, req.Msg.Code, userID); err != nil {
		slog.Warn("AddExpense rejected", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	expense, err := s.ledger.AddExpense(ctx, req.Msg.Code, userID, amount, req.Msg.Description, req.Msg.SplitWith)
	if err != nil {
		slog.Warn("AddExpense failed", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "code", req.Msg.Code, "expense_id", expense.ID, "per_person", expense.PerPerson)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses returns a group's expenses in the order they were recorded.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.ledger, req.Msg.Code, userID)
	if err != nil {
		slog.Warn("ListExpenses failed", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	expenses := make([]*api.Expense, len(group.Expenses))
	for i, e := range group.Expenses {
		expenses[i] = toAPIExpense(e)
	}

	slog.Info("ListExpenses successful", "code", group.Code, "count", len(expenses))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: expenses}), nil
}

// GetBalances returns every member's balance and a set of transfers that
// would settle them.
func (s *ExpenseService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetBalances request received", "code", req.Msg.Code)

	if _, err := memberGroup(ctx, s.ledger, req.Msg.Code, userID); err != nil {
		slog.Warn("GetBalances failed", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	balances, err := s.ledger.Balances(ctx, req.Msg.Code)
	if err != nil {
		slog.Error("GetBalances failed", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.GetBalancesResponse{
		Balances:  make([]*api.Balance, len(balances)),
		Transfers: []*api.Transfer{},
	}
	for i, b := range balances {
		resp.Balances[i] = toAPIBalance(b)
	}
	for _, t := range calculator.SuggestTransfers(balances) {
		resp.Transfers = append(resp.Transfers, toAPITransfer(t))
	}

	slog.Info("GetBalances successful", "code", req.Msg.Code, "members", len(balances))
	return connect.NewResponse(resp), nil
}
