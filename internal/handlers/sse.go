package handlers

import (
	"fmt"
	"net/http"
)

// Events streams order change events to the admin orders page over
// Server-Sent Events. The page re-fetches the full list on any event and
// toasts on inserts; the subscription lives exactly as long as the request.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := h.Bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, e.OrderID)
			flusher.Flush()
		}
	}
}
