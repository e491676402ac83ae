// Package validation validates configuration structs with struct tags.
//
//	type RequestSettings struct {
//	    MinRequestSize int `mapstructure:"min_request_size" validate:"gte=0"`
//	}
//	err := validation.Validate(settings)
//
// Field names in messages come from the mapstructure tag, so they read like
// the configuration keys the user wrote.
package validation
