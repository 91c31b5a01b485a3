package httpapi

// defaultMaxUploadBytes bounds a whole multipart request (image + mask).
const defaultMaxUploadBytes int64 = 32 << 20

// maxUploadBytes controls the maximum allowed request body size for uploads.
var maxUploadBytes = defaultMaxUploadBytes

// SetMaxUploadBytes configures the maximum upload size. Non-positive values
// restore the 32 MiB default.
func SetMaxUploadBytes(n int64) {
	if n <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
		return
	}
	maxUploadBytes = n
}

// defaultDivisor is applied to uploads that carry no ?divisor= query.
// Zero disables cropping.
var defaultDivisor = 0

// SetDefaultDivisor sets the crop divisor used when a request names none.
// Negative values disable cropping.
func SetDefaultDivisor(d int) {
	if d < 0 {
		d = 0
	}
	defaultDivisor = d
}

// Default CORS settings, matching the web client's dev hosts.
var (
	DefaultCORSOrigins = []string{"http://localhost:3000", "http://192.168.56.1:3000"}
	DefaultCORSMethods = []string{"GET", "POST", "OPTIONS"}
	DefaultCORSHeaders = []string{"Content-Type", "Authorization", "Accept"}
)

// corsMaxAge is the preflight cache lifetime in seconds.
const corsMaxAge = 3600

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty lists
// fall back to the defaults above.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = orDefault(origins, DefaultCORSOrigins)
	corsAllowedMethods = orDefault(methods, DefaultCORSMethods)
	corsAllowedHeaders = orDefault(headers, DefaultCORSHeaders)
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		v = def
	}
	return append([]string(nil), v...)
}
