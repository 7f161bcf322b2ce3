// internal/web/respond.go
package web

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"libdesk/internal/fault"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Respond writes v as a JSON body with the given status.
func Respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error maps a fault kind to an HTTP status and writes the message.
// Unknown and Storage kinds surface as a generic database/server failure.
func Error(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)

	var status int
	switch kind {
	case fault.Validation:
		status = http.StatusBadRequest
	case fault.NotFound:
		status = http.StatusNotFound
	case fault.Conflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	Respond(w, status, errorBody{Error: err.Error(), Kind: kind.String()})
}
