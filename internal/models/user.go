// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и кредитный баланс.
// Структура используется в бизнес-логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
// Score — неотрицательный кредитный баланс, изменяется только через
// охраняемую операцию начисления/списания.
type User struct {
	UID          string `json:"_id"`               // Уникальный идентификатор пользователя
	Username     string `json:"username"`          // Имя пользователя (уникальное)
	PasswordHash string `json:"-"`                 // Хэш пароля, никогда не сериализуется
	Fullname     string `json:"fullname"`          // Отображаемое имя
	Score        int    `json:"score"`             // Кредитный баланс, >= 0
	IsAdmin      bool   `json:"isAdmin,omitempty"` // Признак администратора
}

// UserIdentity — минимальная идентичность пользователя, зашиваемая
// в подписанный токен и передаваемая через контекст запроса.
type UserIdentity struct {
	UID      string `json:"_id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// Identity возвращает идентичность пользователя для выпуска токена.
func (u *User) Identity() UserIdentity {
	return UserIdentity{
		UID:      u.UID,
		Username: u.Username,
		Fullname: u.Fullname,
		IsAdmin:  u.IsAdmin,
	}
}

// AsOwner возвращает ссылку владельца для вновь созданных объявлений.
func (id UserIdentity) AsOwner() Owner {
	return Owner{UID: id.UID, Fullname: id.Fullname}
}
