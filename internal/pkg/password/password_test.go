package password

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	hash, err := Hash("hunter2-hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if !Verify("hunter2-hunter2", hash) {
		t.Fatalf("correct password did not verify")
	}
	if Verify("wrong-password", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestVerify_LegacyFormat(t *testing.T) {
	hash := LegacyHash("old-admin-password")
	if !strings.HasPrefix(hash, "pbkdf2_sha256$") {
		t.Fatalf("unexpected legacy format: %q", hash)
	}

	if !Verify("old-admin-password", hash) {
		t.Fatalf("legacy hash did not verify")
	}
	if Verify("wrong-password", hash) {
		t.Fatalf("wrong password verified against legacy hash")
	}
}

func TestVerify_UnknownFormat(t *testing.T) {
	for _, stored := range []string{
		"",
		"plaintext-password",
		"md5$abc$def",
		"pbkdf2_sha256$notanumber$salt$digest",
		"pbkdf2_sha256$310000$salt$zz-not-hex",
	} {
		if Verify("anything", stored) {
			t.Fatalf("unknown format %q verified", stored)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	if !NeedsRehash(LegacyHash("pw")) {
		t.Fatalf("legacy hash should need rehash")
	}

	hash, err := Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if NeedsRehash(hash) {
		t.Fatalf("bcrypt hash should not need rehash")
	}
}
