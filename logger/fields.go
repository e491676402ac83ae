package logger

// Standard field key constants for structured logging.
const (
	FieldComponent   = "component"
	FieldClient      = "client"
	FieldInterceptor = "interceptor"
	FieldTransport   = "transport"
	FieldGeneration  = "generation"
	FieldMethod      = "method"
	FieldURL         = "url"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("client", "foo", "count", 2))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}
