package domain

// Claim - пара тип/значение. Строки user_claims и role_claims
// наружу отдаются только в этом виде.
type Claim struct {
	Type  string
	Value string
}
