package domain

type Stats struct {
	TotalUsers     int
	ConfirmedUsers int
	LockedOutUsers int
	Roles          []*RoleStat
}

type RoleStat struct {
	RoleName  string
	UserCount int
}
