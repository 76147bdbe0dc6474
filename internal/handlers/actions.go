package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"table-orders/internal/broker"
	"table-orders/internal/domain"
)

// Dispatcher is the slice of the gateway the action route needs.
type Dispatcher interface {
	Handle(ctx context.Context, conn broker.Conn, raw []byte) error
}

// ActionsHandler exposes the client-action protocol over plain HTTP for the
// in-memory deployment, which has no message-queue ingress. Each request gets
// its own connection; events pushed back at the caller during the dispatch
// are returned in the response body. Topic membership does not outlive the
// request.
type ActionsHandler struct {
	dispatch Dispatcher
	topics   *broker.MemoryBroker
}

func NewActionsHandler(dispatch Dispatcher, topics *broker.MemoryBroker) *ActionsHandler {
	return &ActionsHandler{dispatch: dispatch, topics: topics}
}

func (h *ActionsHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_body", "could not read request body")
		return
	}

	conn := broker.NewChanConn("http-"+uuid.NewString(), 64)
	if err := h.dispatch.Handle(r.Context(), conn, raw); err != nil {
		h.topics.Disconnect(conn)
		writeProblem(w, http.StatusBadRequest, "bad_action", err.Error())
		return
	}
	// Delivery is synchronous in the in-memory broker, so everything the
	// action addressed to this connection is already buffered.
	h.topics.Disconnect(conn)

	events := make([]json.RawMessage, 0)
	for {
		select {
		case ev := <-conn.Events():
			if b, err := domain.EncodeEvent(ev); err == nil {
				events = append(events, b)
			}
		default:
			writeJSON(w, http.StatusOK, map[string]any{"events": events})
			return
		}
	}
}
