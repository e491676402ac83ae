package compression

import (
	"github.com/kbukum/feignkit/config"
	"github.com/kbukum/feignkit/validation"
)

// Configuration keys.
const (
	KeyResponseEnabled    = "compression.response.enabled"
	KeyRequestEnabled     = "compression.request.enabled"
	KeyRequestMimeTypes   = "compression.request.mime_types"
	KeyRequestMinSize     = "compression.request.min_request_size"
	defaultMinRequestSize = 2048
)

// DefaultMimeTypes are the request content types compressed when none are configured.
var DefaultMimeTypes = []string{"text/xml", "application/xml", "application/json"}

// Properties holds the compression settings.
type Properties struct {
	Response ResponseProperties `yaml:"response" mapstructure:"response"`
	Request  RequestProperties  `yaml:"request" mapstructure:"request"`
}

// ResponseProperties controls the accept-gzip interceptor.
type ResponseProperties struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// RequestProperties controls the content-gzip interceptor.
type RequestProperties struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// MimeTypes lists the media types whose bodies are compressed.
	MimeTypes []string `yaml:"mime_types" mapstructure:"mime_types" validate:"min=1,dive,required"`
	// MinRequestSize is the smallest body, in bytes, that gets compressed.
	MinRequestSize int `yaml:"min_request_size" mapstructure:"min_request_size" validate:"gte=0"`
}

// DefaultProperties returns compression disabled with the default request thresholds.
func DefaultProperties() Properties {
	return Properties{
		Request: RequestProperties{
			MimeTypes:      append([]string(nil), DefaultMimeTypes...),
			MinRequestSize: defaultMinRequestSize,
		},
	}
}

// Validate checks the request thresholds.
func (p Properties) Validate() error {
	return validation.Validate(p)
}

// Resolve reads Properties from src. Absent keys keep their defaults; a
// malformed value is returned as an INVALID_CONFIG error.
func Resolve(src *config.Source) (Properties, error) {
	p := DefaultProperties()
	var err error

	if p.Response.Enabled, err = src.Bool(KeyResponseEnabled, false); err != nil {
		return p, err
	}
	if p.Request.Enabled, err = src.Bool(KeyRequestEnabled, false); err != nil {
		return p, err
	}
	if p.Request.MimeTypes, err = src.StringSlice(KeyRequestMimeTypes, p.Request.MimeTypes); err != nil {
		return p, err
	}
	if p.Request.MinRequestSize, err = src.Int(KeyRequestMinSize, p.Request.MinRequestSize); err != nil {
		return p, err
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
