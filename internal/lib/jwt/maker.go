// Package jwt реализует подписанный конверт идентичности пользователя.
//
// Токен — это HS256-подписанный JWT с минимальной идентичностью
// (uid, username, fullname, isAdmin). Сам факт валидной подписи означает
// "пользователь вошёл": срока жизни и списка отзыва у токена нет.
package jwt

// Maker описывает интерфейс для выпуска и разбора токенов.
type Maker interface {
	// GenerateToken выпускает токен для переданной идентичности.
	// Результат детерминирован при одинаковой идентичности и секрете
	// с точностью до момента выпуска (IssuedAt).
	GenerateToken(uid, username, fullname string, isAdmin bool) (string, error)
	// ParseToken проверяет подпись и возвращает *CustomClaims.
	// Никогда не паникует: любой чужой или повреждённый токен — ошибка.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа.
type MakerImpl struct {
	secretKey string // Секретный ключ для подписи токенов.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа.
func NewMaker(secretKey string) *MakerImpl {
	return &MakerImpl{secretKey: secretKey}
}
