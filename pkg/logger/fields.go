package logger

// Standard field names for consistent logging.
const (
	FieldService   = "service"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldUserID    = "user_id"
	FieldFavorID   = "favor_id"
	FieldStatus    = "status"
	FieldLatency   = "latency"
)
