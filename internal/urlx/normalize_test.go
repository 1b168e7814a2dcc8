package urlx

import (
	"errors"
	"testing"

	"github.com/mikey/phishguard/internal/core"
)

func TestNormalizeEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		if _, err := Normalize(raw); !errors.Is(err, core.ErrEmptyInput) {
			t.Errorf("Normalize(%q): expected ErrEmptyInput, got %v", raw, err)
		}
	}
}

func TestNormalizeDefaultScheme(t *testing.T) {
	n, err := Normalize("example.com/login?next=home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Scheme != "http" {
		t.Errorf("expected default scheme http, got %q", n.Scheme)
	}
	if n.Candidate != "http://example.com/login?next=home" {
		t.Errorf("unexpected candidate %q", n.Candidate)
	}
	if n.Host != "example.com" {
		t.Errorf("expected host example.com, got %q", n.Host)
	}
	if n.Path != "/login" {
		t.Errorf("expected path /login, got %q", n.Path)
	}
	if n.Query != "next=home" {
		t.Errorf("expected query next=home, got %q", n.Query)
	}
}

func TestNormalizeComponents(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		host      string
		domain    string
		subdomain string
	}{
		{
			name:      "plain domain",
			raw:       "https://example.com",
			host:      "example.com",
			domain:    "example.com",
			subdomain: "",
		},
		{
			name:      "subdomain",
			raw:       "https://mail.google.com/inbox",
			host:      "mail.google.com",
			domain:    "google.com",
			subdomain: "mail",
		},
		{
			name:      "uppercase host is lowered",
			raw:       "HTTP://EXAMPLE.COM",
			host:      "example.com",
			domain:    "example.com",
			subdomain: "",
		},
		{
			name:      "no recognized suffix",
			raw:       "http://localhost/admin",
			host:      "localhost",
			domain:    "localhost",
			subdomain: "",
		},
		{
			name:      "punycode decoded",
			raw:       "http://xn--bcher-kva.de",
			host:      "bücher.de",
			domain:    "bücher.de",
			subdomain: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Normalize(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.Host != tc.host {
				t.Errorf("host: got %q, want %q", n.Host, tc.host)
			}
			if n.Domain != tc.domain {
				t.Errorf("domain: got %q, want %q", n.Domain, tc.domain)
			}
			if n.Subdomain != tc.subdomain {
				t.Errorf("subdomain: got %q, want %q", n.Subdomain, tc.subdomain)
			}
			if n.Original != tc.raw {
				t.Errorf("original: got %q, want %q", n.Original, tc.raw)
			}
		})
	}
}
