package kafka

import "time"

// StockMovementRecordedEvent is emitted after a stock movement commits.
// StockResultante and StockMinimo are carried so consumers can detect
// low-stock conditions without a database round trip.
type StockMovementRecordedEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	MovimientoID    uint      `json:"movimiento_id"`
	ProductoID      uint      `json:"producto_id"`
	ProductoNombre  string    `json:"producto_nombre"`
	TipoMovimiento  string    `json:"tipo_movimiento"`
	Cantidad        int       `json:"cantidad"`
	StockResultante int       `json:"stock_resultante"`
	StockMinimo     int       `json:"stock_minimo"`
	Timestamp       time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockMovementRecorded = "stock.movement.recorded"
)

// Kafka topics
const (
	TopicStockMovements = "stock-movements"
)
