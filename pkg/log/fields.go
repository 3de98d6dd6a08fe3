package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Service
	FieldService = "service"

	// Catalog
	FieldEntity   = "entity"
	FieldIndex    = "index"
	FieldEntityID = "entity_id"
	FieldCacheKey = "cache_key"
	FieldCodec    = "codec"
)
