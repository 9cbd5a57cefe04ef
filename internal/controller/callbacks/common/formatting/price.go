package formatting

import (
	"fmt"
	"math"
)

// FormatPrice форматирует сумму с символом валюты, без копеек если они равны 0: "$50", "$49.99"
func FormatPrice(symbol string, amount float64) string {
	if amount == math.Trunc(amount) {
		return fmt.Sprintf("%s%.0f", symbol, amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// Pluralize выбирает форму слова по количеству
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
