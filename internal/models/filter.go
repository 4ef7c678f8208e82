package models

// CarFilter представляет параметры фильтрации объявлений,
// которые передаются в слой доступа к данным.
// Оба фильтра опциональны и комбинируются через AND.
type CarFilter struct {
	Txt      string   // Подстрока производителя, без учёта регистра
	MaxPrice *float64 // Верхняя граница цены (nil, если фильтра по цене нет)
}
