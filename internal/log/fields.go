package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldBackend   = "backend"
	FieldDBPath    = "db_path"
	FieldPage      = "page"
	FieldStatus    = "status"
	FieldYear      = "year"
	FieldCategory  = "category"
	FieldCount     = "count"
	FieldGistID    = "gist_id"
	FieldFile      = "file"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentAuth     = "auth"
	ComponentAuthFlow = "authflow"
	ComponentStrava   = "strava"
	ComponentStorage  = "storage"
	ComponentGist     = "gist"
	ComponentRewrite  = "rewrite"
)
