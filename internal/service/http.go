package service

import (
	"io"
	"log"
	"net/http"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
	"github.com/wizardbeardstudio/centralbank/internal/platform/metrics"
)

// NewMux builds the HTTP surface: POST /api/transaction plus /healthz and
// /metrics, the way the teacher's cmd/rgsd/main.go assembles its mux. Only
// /api/transaction is wrapped in the metrics middleware.
func NewMux(env *Envelope, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/transaction", m.Middleware(transactionHandler(env, m)))
	mux.HandleFunc("/healthz", healthHandler)
	mux.Handle("/metrics", m.Handler())
	return mux
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// transactionHandler implements POST /api/transaction: decode a
// TransactionRequest, run it through the untrusted entry point, and
// encode the Result<TransactionResult, TransactionError> envelope. HTTP
// status is 200 for either the Ok or Error case; a body that cannot be
// read or decoded, or an outcome that cannot be encoded (such as a store
// I/O error), is a framework-level 500, per spec.md §7.
func transactionHandler(env *Envelope, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("read transaction request body: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		req, err := domain.UnmarshalTransactionRequest(body)
		if err != nil {
			log.Printf("decode transaction request: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		result, applyErr := env.Untrusted(r.Context(), req)
		m.ObserveTransaction(string(req.Action.Kind()), applyErr)

		out, err := domain.MarshalOutcome(result, applyErr)
		if err != nil {
			log.Printf("encode transaction response: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}
