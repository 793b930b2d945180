package utils

import (
	"fmt"
	"math"
)

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// FormatDistance форматирует расстояние: метры до 1 км, дальше километры с одним знаком
func FormatDistance(distanceMeters int) string {
	if distanceMeters < 1000 {
		return fmt.Sprintf("%dm", distanceMeters)
	}
	return fmt.Sprintf("%.1f km", float64(distanceMeters)/1000)
}

// FormatDuration форматирует длительность в минутах или часах
func FormatDuration(durationSeconds int) string {
	minutes := int(math.Round(float64(durationSeconds) / 60))
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
