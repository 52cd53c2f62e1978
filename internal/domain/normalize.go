package domain

import "strings"

// Normalize приводит имя пользователя, email или имя роли к виду,
// по которому выполняется поиск и проверка уникальности.
func Normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
