package domain

import "time"

// Stream names
const (
	StreamRouteMetrics = "stream:route:metrics"
)

// RouteMetricsRequestedEvent - запрос на пересчет метрик маршрута после изменения координат
type RouteMetricsRequestedEvent struct {
	RouteID     int64     `json:"route_id"`
	RequestedBy int64     `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
