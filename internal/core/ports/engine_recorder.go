package ports

import "parceltrack/internal/core/domain/services"

// EngineRecorder receives dispatch engine events for metrics.
type EngineRecorder = services.Recorder
