package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func mustKey(t *testing.T) []byte {
	t.Helper()
	k, err := ParseHexKey("TEST_KEY", testKeyHex)
	if err != nil {
		t.Fatalf("parse key: %v", err)
	}
	return k
}

func TestParseHexKey(t *testing.T) {
	if _, err := ParseHexKey("K", "zz"); err == nil {
		t.Fatalf("expected error for non-hex key")
	}
	if _, err := ParseHexKey("K", "  "); err == nil {
		t.Fatalf("expected error for empty key")
	}
	k, err := ParseHexKey("K", " 0a0b ")
	if err != nil || !bytes.Equal(k, []byte{0x0a, 0x0b}) {
		t.Fatalf("unexpected key %x (%v)", k, err)
	}
}

func TestBlindIndexer_DeterministicAndKeyed(t *testing.T) {
	a := NewBlindIndexer(mustKey(t))
	b := NewBlindIndexer([]byte("another key"))

	if !bytes.Equal(a.Index("ACC-1"), a.Index("ACC-1")) {
		t.Fatalf("index must be deterministic")
	}
	if bytes.Equal(a.Index("ACC-1"), a.Index("ACC-2")) {
		t.Fatalf("different values must not collide")
	}
	if bytes.Equal(a.Index("ACC-1"), b.Index("ACC-1")) {
		t.Fatalf("different keys must give different indexes")
	}
	if len(a.Index("x")) != 32 {
		t.Fatalf("expected 32-byte index")
	}
}

func TestBlindIndexer_KnownVector(t *testing.T) {
	// RFC 4231 test case 2.
	idx := NewBlindIndexer([]byte("Jefe")).Index("what do ya want for nothing?")
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	if hex.EncodeToString(idx) != want {
		t.Fatalf("unexpected HMAC: %x", idx)
	}
}

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer(mustKey(t))
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}

	plain := []byte(`{"balance":1000}`)
	ct, nonce, tag, err := s.Seal(plain)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if len(tag) != 16 || len(nonce) != 12 || len(ct) != len(plain) {
		t.Fatalf("unexpected sizes ct=%d nonce=%d tag=%d", len(ct), len(nonce), len(tag))
	}

	got, err := s.Open(ct, nonce, tag)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestSealer_AppendToCiphertextKeepsTag(t *testing.T) {
	s, _ := NewSealer(mustKey(t))
	ct, nonce, tag, err := s.Seal([]byte(`{"balance":1000}`))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if cap(ct) != len(ct) {
		t.Fatalf("ciphertext capacity %d reaches into the tag", cap(ct))
	}

	before := bytes.Clone(tag)
	_ = append(ct, bytes.Repeat([]byte{0xAA}, tagSize)...)
	if !bytes.Equal(tag, before) {
		t.Fatalf("appending to ciphertext overwrote the tag")
	}
	if _, err := s.Open(ct, nonce, tag); err != nil {
		t.Fatalf("open after append: %v", err)
	}
}

func TestSealer_OpenRejectsTampering(t *testing.T) {
	s, _ := NewSealer(mustKey(t))
	ct, nonce, tag, _ := s.Seal([]byte("secret"))

	ct[0] ^= 0xff
	if _, err := s.Open(ct, nonce, tag); err == nil {
		t.Fatalf("expected tampered ciphertext to fail")
	}
	if _, err := s.Open(ct, nonce, tag[:4]); err == nil {
		t.Fatalf("expected short tag to fail")
	}
	if _, err := s.Open(ct, nonce[:3], tag); err == nil {
		t.Fatalf("expected short nonce to fail")
	}
}

func TestNewSealer_RejectsBadKeySize(t *testing.T) {
	if _, err := NewSealer([]byte("short")); err == nil {
		t.Fatalf("expected error for 5-byte key")
	}
}
