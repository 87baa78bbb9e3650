// Command lease-factory is a stub collaborator for local development. It
// keeps lease terms in memory, serves GET /leases/{id}/term, and accepts
// PUT /leases/{id}/term with {"term": n}.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
)

type termBody struct {
	Term int64 `json:"term"`
}

type factory struct {
	mu    sync.Mutex
	terms map[int64]int64
}

func (f *factory) handle(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "term" {
		http.NotFound(w, r)
		return
	}
	leaseID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		term, ok := f.terms[leaseID]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(termBody{Term: term})
	case http.MethodPut:
		var body termBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if _, ok := f.terms[leaseID]; !ok {
			http.NotFound(w, r)
			return
		}
		f.terms[leaseID] = body.Term
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func main() {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":9092"
	}

	f := &factory{terms: map[int64]int64{1: 12, 2: 12}}
	mux := http.NewServeMux()
	mux.HandleFunc("/leases/", f.handle)

	log.Printf("lease-factory mock listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
