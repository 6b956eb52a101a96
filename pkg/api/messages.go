package api

// User is a registered identity.
type User struct {
	ID        string `json:"id"`
	DeviceID  string `json:"device_id"`
	CreatedAt int64  `json:"created_at"`
}

// Group is the public view of a group. Expenses are listed separately.
type Group struct {
	Code         string   `json:"code"`
	Creator      string   `json:"creator"`
	Members      []string `json:"members"`
	ExpenseCount int32    `json:"expense_count"`
	CreatedAt    int64    `json:"created_at"`
}

// Expense is one recorded expense.
type Expense struct {
	ID          string   `json:"id"`
	Payer       string   `json:"payer"`
	Amount      string   `json:"amount"`
	Description string   `json:"description"`
	SplitWith   []string `json:"split_with"`
	PerPerson   string   `json:"per_person"`
	CreatedAt   int64    `json:"created_at"`
}

// Balance is a member's position in a group.
// A positive net means the member is owed money.
type Balance struct {
	UserID string `json:"user_id"`
	Paid   string `json:"paid"`
	Owed   string `json:"owed"`
	Net    string `json:"net"`
}

// Transfer is a suggested payment between two members.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// AuthService

type RegisterRequest struct {
	DeviceID string `json:"device_id"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	DeviceID string `json:"device_id"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// GroupService

type CreateGroupRequest struct{}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type JoinGroupRequest struct {
	Code string `json:"code"`
}

type JoinGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Codes []string `json:"codes"`
}

type GetGroupRequest struct {
	Code string `json:"code"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	Code string `json:"code"`
}

type DeleteGroupResponse struct{}

// ExpenseService

type AddExpenseRequest struct {
	Code        string   `json:"code"`
	Amount      string   `json:"amount"`
	Description string   `json:"description"`
	SplitWith   []string `json:"split_with"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	Code string `json:"code"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetBalancesRequest struct {
	Code string `json:"code"`
}

type GetBalancesResponse struct {
	Balances  []*Balance  `json:"balances"`
	Transfers []*Transfer `json:"transfers"`
}
