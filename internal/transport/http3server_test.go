package transport

import (
	"net/http"
	"testing"
)

func TestGenerateSelfSignedTLSProducesUsableCert(t *testing.T) {
	cfg, err := GenerateSelfSignedTLS([]string{"127.0.0.1", "localhost"}, 0)
	if err != nil {
		t.Fatalf("GenerateSelfSignedTLS: %v", err)
	}

	if len(cfg.Certificates) != 1 {
		t.Fatalf("got %d certificates, want 1", len(cfg.Certificates))
	}

	if len(cfg.NextProtos) != 1 || cfg.NextProtos[0] != "h3" {
		t.Fatalf("NextProtos = %v, want [h3]", cfg.NextProtos)
	}
}

func TestHTTP3ServerStartBindsEphemeralPortAndStops(t *testing.T) {
	cfg, err := GenerateSelfSignedTLS([]string{"127.0.0.1"}, 0)
	if err != nil {
		t.Fatalf("GenerateSelfSignedTLS: %v", err)
	}

	srv := NewHTTP3Server("127.0.0.1:0", cfg, http.NewServeMux())

	addr, err := srv.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if addr == "" {
		t.Fatalf("expected a non-empty bound address")
	}

	if err := srv.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
