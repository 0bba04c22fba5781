package domain

type OperatorRole string

const (
	OperatorRoleAdmin OperatorRole = "ADMIN"
	OperatorRoleAgent OperatorRole = "AGENT"
)

// Operator is a back-office user allowed to call the API
type Operator struct {
	ID           int32        `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"`
	Role         OperatorRole `json:"role"`
}
