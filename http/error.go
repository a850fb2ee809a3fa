package http

import (
	"encoding/json"
	"net/http"

	"github.com/fwojciec/sitepack"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	sitepack.EINVALID:  http.StatusBadRequest,
	sitepack.EFETCH:    http.StatusBadRequest,
	sitepack.ETIMEOUT:  http.StatusBadRequest,
	sitepack.ENOTFOUND: http.StatusNotFound,
	sitepack.ECONFLICT: http.StatusConflict,
	sitepack.EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// messageResponse is the body of error and confirmation responses.
type messageResponse struct {
	Message string `json:"message"`
}

// Error writes err as a JSON message. Internal errors are logged and replaced
// with a generic message.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := sitepack.ErrorCode(err), sitepack.ErrorMessage(err)
	if code == sitepack.EINTERNAL {
		s.Logger.Error("internal error",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}
	writeJSON(w, ErrorStatusCode(code), messageResponse{Message: message})
}

// writeJSON encodes v before writing headers so a failed encoding never
// produces a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

// writeBody writes a fully built body with its content type.
func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
