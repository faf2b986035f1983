package telemetry

// msgFetchLog carries a chunk of progress output for one fetch span.
type msgFetchLog struct {
	spanID string
	data   []byte
}
