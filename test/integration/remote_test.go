//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/jsamuelsen/quote-manager/internal/domain"
)

// fakeRemote is an in-process remote quote service.
type fakeRemote struct {
	server *httptest.Server

	mu          sync.Mutex
	quotes      []domain.Quote
	pushed      []domain.Quote
	unavailable bool
}

type wireQuote struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func newFakeRemote() *fakeRemote {
	r := &fakeRemote{}
	r.server = httptest.NewServer(http.HandlerFunc(r.serve))
	return r
}

func (r *fakeRemote) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unavailable {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if req.URL.Path != "/quotes" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch req.Method {
	case http.MethodGet:
		out := make([]wireQuote, 0, len(r.quotes))
		for _, q := range r.quotes {
			out = append(out, wireQuote{Text: q.Text, Category: q.Category})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	case http.MethodPost:
		var q wireQuote
		if err := json.NewDecoder(req.Body).Decode(&q); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		r.pushed = append(r.pushed, domain.Quote{Text: q.Text, Category: q.Category})
		w.WriteHeader(http.StatusCreated)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (r *fakeRemote) URL() string { return r.server.URL }

func (r *fakeRemote) Close() { r.server.Close() }

func (r *fakeRemote) Serve(quotes []domain.Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = quotes
}

func (r *fakeRemote) SetUnavailable(down bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unavailable = down
}

func (r *fakeRemote) Pushed() []domain.Quote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Quote(nil), r.pushed...)
}
