package notification

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/viant/invitation/internal/logging"
	"github.com/viant/jsonrpc"
)

const maxEventSize = 1 << 20

// Handler accepts pushed events over HTTP and hands them to a Deliverer.
// The body is either an Event or a JSON-RPC notification whose params are
// an Event. Well-formed events are acknowledged with 202 whether or not they
// matched a pending operation; a delivery failure answers 503 so the sender
// retries.
type Handler struct {
	deliverer Deliverer
	verifier  *Verifier
	logger    *slog.Logger
}

// HandlerOption customizes a Handler.
type HandlerOption func(h *Handler)

// WithVerifier requires callbacks to carry a token accepted by verifier.
func WithVerifier(verifier *Verifier) HandlerOption {
	return func(h *Handler) {
		h.verifier = verifier
	}
}

// WithHandlerLogger sets the handler logger.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// envelope detects a JSON-RPC notification.
type envelope struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.verifier != nil {
		if err := h.verifier.Verify(r); err != nil {
			h.logger.Warn("rejected callback", "remote", r.RemoteAddr, "error", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxEventSize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	event, err := h.decode(data)
	if err != nil {
		h.logger.Warn("invalid callback body", "error", err)
		http.Error(w, "invalid event", http.StatusBadRequest)
		return
	}
	matched, err := h.deliverer.Deliver(r.Context(), event)
	if err != nil {
		h.logger.Error("callback delivery failed", "operation_id", event.OperationID, "error", err)
		http.Error(w, "delivery unavailable", http.StatusServiceUnavailable)
		return
	}
	h.logger.Debug("callback delivered", "operation_id", event.OperationID, "matched", matched)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) decode(data []byte) (*Event, error) {
	head := &envelope{}
	if err := json.Unmarshal(data, head); err != nil {
		return nil, err
	}
	if strings.TrimSpace(head.Method) == "" {
		return decodeEvent(data)
	}
	if head.Method != MethodOperationCompleted {
		return nil, &unsupportedMethodError{method: head.Method}
	}
	return decodeEvent(head.Params)
}

func eventFromNotification(notification *jsonrpc.Notification) (*Event, error) {
	if notification.Method != MethodOperationCompleted {
		return nil, &unsupportedMethodError{method: notification.Method}
	}
	return decodeEvent(notification.Params)
}

func decodeEvent(data []byte) (*Event, error) {
	event := &Event{}
	if err := json.Unmarshal(data, event); err != nil {
		return nil, err
	}
	return event, event.Validate()
}

type unsupportedMethodError struct {
	method string
}

func (e *unsupportedMethodError) Error() string {
	return "unsupported notification method: " + e.method
}

// NewHandler creates an HTTP handler delivering events to deliverer.
func NewHandler(deliverer Deliverer, options ...HandlerOption) *Handler {
	ret := &Handler{deliverer: deliverer, logger: logging.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
