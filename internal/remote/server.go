// Package remote is a minimal HTTP transport for submitting source to
// a running evaluator and getting back a JSON-encoded result, the
// out-of-core counterpart to the in-process evaluation façade. It is
// deliberately thin: one handler, one request/response shape, no
// session state across requests.
package remote

import (
	"encoding/json"
	"net/http"

	"github.com/profiles/metaes/internal/interp"
)

// EvalRequest is the JSON body a client posts to run source against a
// fresh scope of the server's root environment.
type EvalRequest struct {
	Source string            `json:"source"`
	Scope  map[string]string `json:"scope,omitempty"`
}

// EvalResponse is what the handler writes back: exactly one of Result
// or Error is populated.
type EvalResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server evaluates posted source against a shared root environment. A
// fresh child scope is built per request, so declarations and scope
// values of one request are not visible to another, while globals
// installed on Root are shared. Assignment to an undeclared name
// (without StrictAssignment) creates the binding on the shared Root,
// where later requests see it.
type Server struct {
	Ctx *interp.Context
}

// NewServer wraps an already-configured Context.
func NewServer(ctx *interp.Context) *Server {
	return &Server{Ctx: ctx}
}

// Handler returns the single mux entry this server needs.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/eval", s.handleEval)
	return mux
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var req EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	extras := make(map[string]interp.Value, len(req.Scope))
	for name, value := range req.Scope {
		extras[name] = interp.String(value)
	}
	scope := s.Ctx.NewScope(extras)

	var resp EvalResponse
	s.Ctx.Evaluate(req.Source, func(v interp.Value) {
		resp.Result = interp.ToDisplayString(v)
	}, func(pkt *interp.ExceptionPacket) {
		resp.Error = string(pkt.Type) + ": " + interp.ToDisplayString(pkt.Value)
	}, scope, interp.EvaluationConfig{})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
