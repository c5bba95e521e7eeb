package handler

import "net/http"

// Version is stamped at build time via -ldflags.
var Version = "dev"

// VersionResponse reports the running build.
type VersionResponse struct {
	Version string `json:"version"`
}

// HandleVersion reports the service version
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionResponse{Version: Version})
	}
}
