package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vanshika/flowpath/internal/domain"
	"github.com/vanshika/flowpath/internal/flowfile"
	"github.com/vanshika/flowpath/internal/flowgraph"
	"github.com/vanshika/flowpath/internal/pathfinder"
	"github.com/vanshika/flowpath/internal/repository"
	"github.com/vanshika/flowpath/internal/service"
)

const unreachableMessage = "No path found"

// APIHandlers exposes HTTP handlers for the path API.
type APIHandlers struct {
	logger       *slog.Logger
	service      *service.PathService
	decodeOpts   flowfile.Options
	maxBodyBytes int64
}

// HandlerOptions tunes request decoding.
type HandlerOptions struct {
	// MaxBodyBytes caps request bodies; zero leaves them uncapped.
	MaxBodyBytes int64
	// Decode controls how legacy editor elements are classified.
	Decode flowfile.Options
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.PathService, opts HandlerOptions) *APIHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandlers{
		logger:       logger,
		service:      svc,
		decodeOpts:   opts.Decode,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

type shortestPathRequest struct {
	Elements json.RawMessage `json:"elements"`
	StartID  string          `json:"startId"`
	EndID    string          `json:"endId"`
}

type nodeOptionsRequest struct {
	Elements json.RawMessage `json:"elements"`
}

type pathEdgeResponse struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

type foundPathResponse struct {
	Status   domain.PathStatus  `json:"status"`
	Path     []string           `json:"path"`
	NodeIDs  []string           `json:"nodeIds"`
	Edges    []pathEdgeResponse `json:"edges"`
	Hops     int                `json:"hops"`
	Distance float64            `json:"distance"`
}

type unreachablePathResponse struct {
	Status  domain.PathStatus `json:"status"`
	Message string            `json:"message"`
}

type nodeOptionResponse struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

type nodeOptionsResponse struct {
	Start []nodeOptionResponse `json:"start"`
	End   []nodeOptionResponse `json:"end"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandlers) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	var payload shortestPathRequest
	if !h.decodeBody(w, r, &payload) {
		return
	}
	elements, err := h.decodeElements(payload.Elements)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.service.ShortestPath(r.Context(), service.ShortestPathRequest{
		Elements: elements,
		StartID:  payload.StartID,
		EndID:    payload.EndID,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPathResponse(outcome))
}

func (h *APIHandlers) handleFlowShortestPath(w http.ResponseWriter, r *http.Request) {
	flowID := chi.URLParam(r, "flowId")
	query := r.URL.Query()

	outcome, err := h.service.ShortestPathInFlow(r.Context(), flowID, query.Get("startId"), query.Get("endId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPathResponse(outcome))
}

func (h *APIHandlers) handleNodeOptions(w http.ResponseWriter, r *http.Request) {
	var payload nodeOptionsRequest
	if !h.decodeBody(w, r, &payload) {
		return
	}
	elements, err := h.decodeElements(payload.Elements)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	choices, err := h.service.SelectableNodes(elements)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOptionsResponse(choices))
}

func (h *APIHandlers) handleFlowNodeOptions(w http.ResponseWriter, r *http.Request) {
	choices, err := h.service.SelectableNodesInFlow(r.Context(), chi.URLParam(r, "flowId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOptionsResponse(choices))
}

func (h *APIHandlers) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	defer body.Close()

	dec := json.NewDecoder(body)
	err := dec.Decode(dst)
	if err == nil {
		err = flowfile.ExpectEOF(dec)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

func (h *APIHandlers) decodeElements(raw json.RawMessage) ([]domain.Element, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	return flowfile.DecodeBytes(raw, flowfile.FormatJSON, h.decodeOpts)
}

func (h *APIHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r.Context()),
		)
		writeError(w, status, http.StatusText(status))
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pathfinder.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, flowgraph.ErrMalformedGraph):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrTooManyElements):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, repository.ErrFlowNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrFlowSourceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toPathResponse(outcome domain.PathOutcome) any {
	if !outcome.Found() {
		return unreachablePathResponse{Status: domain.PathUnreachable, Message: unreachableMessage}
	}

	resp := foundPathResponse{
		Status:   domain.PathFound,
		Path:     outcome.Labels(),
		NodeIDs:  outcome.NodeIDs(),
		Edges:    make([]pathEdgeResponse, 0, len(outcome.Edges)),
		Hops:     outcome.Hops(),
		Distance: outcome.Distance,
	}
	for _, e := range outcome.Edges {
		resp.Edges = append(resp.Edges, pathEdgeResponse{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
		})
	}
	return resp
}

func toOptionsResponse(choices domain.NodeChoices) nodeOptionsResponse {
	convert := func(opts []domain.NodeOption) []nodeOptionResponse {
		out := make([]nodeOptionResponse, 0, len(opts))
		for _, o := range opts {
			out = append(out, nodeOptionResponse{Value: o.Value, Text: o.Text})
		}
		return out
	}
	return nodeOptionsResponse{Start: convert(choices.Start), End: convert(choices.End)}
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: strings.TrimSpace(message)})
}
