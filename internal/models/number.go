package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Number — числовое поле JSON-запроса, принимающее как число,
// так и числовую строку ("200" и 200 эквивалентны).
// Нечисловой ввод приводит к ошибке декодирования.
type Number float64

// UnmarshalJSON реализует json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("models.Number: %q is not numeric", s)
	}
	*n = Number(v)
	return nil
}

// Float64 возвращает значение как float64.
func (n Number) Float64() float64 {
	return float64(n)
}
