package domain

type Role struct {
	ID               string
	Name             string
	NormalizedName   string
	ConcurrencyStamp string
}
