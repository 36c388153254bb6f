package model

// MonthlyBucket aggregates income and expense sums for one calendar month.
// Month is a human-readable label such as "ene 2024".
type MonthlyBucket struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// BalanceReport is derived from the full movement set on every request;
// it is never persisted. TotalIncome and TotalExpense duplicate Income and
// Expenses for callers that expect the alias names.
type BalanceReport struct {
	Balance      float64         `json:"balance"`
	Income       float64         `json:"income"`
	Expenses     float64         `json:"expenses"`
	TotalIncome  float64         `json:"totalIncome"`
	TotalExpense float64         `json:"totalExpense"`
	MonthlyData  []MonthlyBucket `json:"monthlyData"`
}
