package worker

import (
	"context"
)

// Worker - фоновый потребитель Redis Stream
type Worker interface {
	// Start блокируется до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	Stop() error

	Name() string

	// Stream - имя стрима, который читает воркер
	Stream() string
}

// Outcome - результат обработки одного сообщения
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeRetry     Outcome = "retry"
)
