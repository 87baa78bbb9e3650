// Command payment-tracker is a stub collaborator for local development. It
// serves canned payment histories keyed by lease ID and answers 404 for
// anything it has never seen, matching the real tracker's contract.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type payment struct {
	Amount    int64 `json:"amount"`
	Timestamp int64 `json:"timestamp"`
	OnTime    bool  `json:"on_time"`
}

type history struct {
	Payments []payment `json:"payments"`
}

var leases = map[int64]history{
	1: {Payments: spotless(13)},
	2: {Payments: []payment{
		{Amount: 900, Timestamp: 10, OnTime: true},
		{Amount: 900, Timestamp: 20, OnTime: false},
		{Amount: 900, Timestamp: 30, OnTime: false},
	}},
}

func spotless(n int) []payment {
	out := make([]payment, n)
	for i := range out {
		out[i] = payment{Amount: 1200, Timestamp: int64(i * 10), OnTime: true}
	}
	return out
}

func main() {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":9091"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/leases/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[2] != "payments" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		leaseID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		h, ok := leases[leaseID]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h)
	})

	log.Printf("payment-tracker mock listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
