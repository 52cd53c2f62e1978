package domain

// UserLogin связывает пользователя с внешним провайдером входа.
// Пара (LoginProvider, ProviderKey) уникальна.
type UserLogin struct {
	LoginProvider       string
	ProviderKey         string
	ProviderDisplayName string
	UserID              string
}

// UserToken - именованное значение, которое провайдер хранит для пользователя
type UserToken struct {
	UserID        string
	LoginProvider string
	Name          string
	Value         string
}
