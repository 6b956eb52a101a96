// Package apiconnect binds the godutch services to Connect handlers and clients.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/mmynk/godutch/pkg/api"
)

const (
	// AuthServiceName is the fully-qualified name of the AuthService service.
	AuthServiceName = "godutch.v1.AuthService"
	// GroupServiceName is the fully-qualified name of the GroupService service.
	GroupServiceName = "godutch.v1.GroupService"
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "godutch.v1.ExpenseService"
)

// Procedure paths, as exposed on the HTTP route.
const (
	AuthServiceRegisterProcedure = "/godutch.v1.AuthService/Register"
	AuthServiceLoginProcedure    = "/godutch.v1.AuthService/Login"

	GroupServiceCreateGroupProcedure = "/godutch.v1.GroupService/CreateGroup"
	GroupServiceJoinGroupProcedure   = "/godutch.v1.GroupService/JoinGroup"
	GroupServiceListGroupsProcedure  = "/godutch.v1.GroupService/ListGroups"
	GroupServiceGetGroupProcedure    = "/godutch.v1.GroupService/GetGroup"
	GroupServiceDeleteGroupProcedure = "/godutch.v1.GroupService/DeleteGroup"

	ExpenseServiceAddExpenseProcedure   = "/godutch.v1.ExpenseService/AddExpense"
	ExpenseServiceListExpensesProcedure = "/godutch.v1.ExpenseService/ListExpenses"
	ExpenseServiceGetBalancesProcedure  = "/godutch.v1.ExpenseService/GetBalances"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}
