package models

// Owner — ссылка на владельца объявления, встраиваемая в Car.
type Owner struct {
	UID      string `json:"_id"`      // Идентификатор пользователя-владельца
	Fullname string `json:"fullname"` // Отображаемое имя владельца
}

// Car представляет объявление о продаже автомобиля.
type Car struct {
	ID     string   `json:"_id"`            // Уникальный идентификатор объявления
	Vendor string   `json:"vendor"`         // Производитель
	Speed  float64  `json:"speed"`          // Максимальная скорость
	Price  float64  `json:"price"`          // Цена
	Owner  Owner    `json:"owner"`          // Владелец объявления
	Msgs   []string `json:"msgs,omitempty"` // Сообщения по объявлению
}

// DummyCar — входная структура запроса на создание или обновление
// объявления. Speed и Price принимают как JSON-число, так и числовую
// строку; владелец из запроса игнорируется для существующих записей.
type DummyCar struct {
	ID     string `json:"_id,omitempty"`
	Vendor string `json:"vendor" validate:"required"`
	Speed  Number `json:"speed"`
	Price  Number `json:"price"`
	Owner  *Owner `json:"owner,omitempty"`
}
