package cache

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"

	hash1 := hashIP(ip)
	hash2 := hashIP(ip)

	if hash1 != hash2 {
		t.Error("Same IP should produce same hash")
	}
}

func TestHashIP_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv4 localhost", "127.0.0.1"},
		{"IPv6 localhost", "::1"},
		{"IPv6 full", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash := hashIP(tt.ip)
			// hashIP uses first 8 bytes of SHA256, encoded as 16 hex chars
			if len(hash) != 16 {
				t.Errorf("hashIP(%q) length = %d, want 16", tt.ip, len(hash))
			}
		})
	}
}

func TestHashIP_Different(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip1  string
		ip2  string
	}{
		{"different IPv4", "192.168.1.1", "192.168.1.2"},
		{"IPv4 vs IPv6", "127.0.0.1", "::1"},
		{"public vs private", "8.8.8.8", "192.168.1.1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if hashIP(tt.ip1) == hashIP(tt.ip2) {
				t.Errorf("Different IPs should produce different hashes: %q and %q", tt.ip1, tt.ip2)
			}
		})
	}
}

func TestSessionRecord_RoundTrip(t *testing.T) {
	t.Parallel()

	record := sessionRecord{
		UserID:    "user-1",
		CreatedAt: time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal session record: %v", err)
	}

	var decoded sessionRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal session record: %v", err)
	}

	if decoded.UserID != record.UserID {
		t.Errorf("UserID = %q, want %q", decoded.UserID, record.UserID)
	}
	if !decoded.CreatedAt.Equal(record.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", decoded.CreatedAt, record.CreatedAt)
	}
}
