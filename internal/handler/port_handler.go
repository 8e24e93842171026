package handler

import (
	"errors"
	"net/http"

	"maritime-ai-server/internal/domain"

	"github.com/gorilla/mux"
)

// PortHandler handles port lookup requests.
type PortHandler struct {
	ports  domain.PortDirectory
	logger domain.Logger
}

// NewPortHandler creates a new port handler
func NewPortHandler(ports domain.PortDirectory, logger domain.Logger) *PortHandler {
	return &PortHandler{
		ports:  ports,
		logger: logger,
	}
}

// GetPort resolves a sailor-friendly port name to its display name and
// coordinates.
func (h *PortHandler) GetPort(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	if name == "" {
		writeError(w, http.StatusBadRequest, "Port name is required")
		return
	}

	port, err := h.ports.Resolve(r.Context(), name)
	if errors.Is(err, domain.ErrPortNotFound) {
		writeError(w, http.StatusNotFound, "Port not found")
		return
	}
	if err != nil {
		h.logger.Error("Failed to resolve port", err, "name", name)
		writeError(w, http.StatusBadGateway, "Port lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, port)
}
