// Command luat-parsesvc exposes the lexer and parser as a parse-as-a-
// service HTTP/3 endpoint: POST /parse with a source body returns the
// token and AST dumps as JSON, or the diagnostics if the parse failed.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/luat-lang/luat/internal/arena"
	"github.com/luat-lang/luat/internal/debugdump"
	"github.com/luat-lang/luat/internal/lexer"
	"github.com/luat-lang/luat/internal/parser"
	"github.com/luat-lang/luat/internal/strpool"
	"github.com/luat-lang/luat/internal/transport"
)

const (
	arenaBytes  = 1 << 20
	poolBuckets = (50 * 1024) / 8
)

type parseResponse struct {
	Success bool     `json:"success"`
	Tokens  string   `json:"tokens,omitempty"`
	AST     string   `json:"ast,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)

		return
	}

	source, err := io.ReadAll(io.LimitReader(r.Body, 8<<20))
	if err != nil {
		http.Error(w, "could not read body", http.StatusBadRequest)

		return
	}

	a := arena.New(arenaBytes)
	pool := strpool.New(a, poolBuckets)

	tokens := lexer.Tokenize(source, pool)
	root, diags := parser.Parse(tokens, a)

	resp := parseResponse{Success: diags.Empty()}

	if resp.Success {
		var tokBuf, astBuf bytes.Buffer
		debugdump.Tokens(&tokBuf, tokens)
		debugdump.AST(&astBuf, root)
		resp.Tokens = tokBuf.String()
		resp.AST = astBuf.String()
	} else {
		for _, d := range diags.All() {
			resp.Errors = append(resp.Errors, d.Error())
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func main() {
	addr := flag.String("addr", "127.0.0.1:4433", "address to bind the HTTP/3 listener")
	flag.Parse()

	tlsCfg, err := transport.GenerateSelfSignedTLS([]string{"127.0.0.1", "localhost"}, 0)
	if err != nil {
		log.Fatalf("luat-parsesvc: generate TLS config: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/parse", handleParse)

	srv := transport.NewHTTP3Server(*addr, tlsCfg, mux)

	bound, err := srv.Start()
	if err != nil {
		log.Fatalf("luat-parsesvc: start: %v", err)
	}

	fmt.Fprintf(os.Stderr, "luat-parsesvc: listening on https://%s/parse (h3)\n", bound)

	select {}
}
