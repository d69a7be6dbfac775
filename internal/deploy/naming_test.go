package deploy

import (
	"strings"
	"testing"
)

func TestProjectNameStableForUser(t *testing.T) {
	a := ProjectName("Acme Bakery", "3f8a2c1d-9b00-4e55-8888-000000000000")
	b := ProjectName("Acme Bakery", "3f8a2c1d-9b00-4e55-8888-000000000000")
	if a != b {
		t.Fatalf("names differ for same user: %q vs %q", a, b)
	}
	if a != "siteforge-acme-bakery-3f8a2c1d" {
		t.Fatalf("name = %q", a)
	}
}

func TestProjectNameAnonymousIsFresh(t *testing.T) {
	a := ProjectName("Acme Bakery", "")
	b := ProjectName("Acme Bakery", "")
	if a == b {
		t.Fatalf("anonymous names should not repeat: %q", a)
	}
	if !strings.HasPrefix(a, "siteforge-acme-bakery-") {
		t.Fatalf("name = %q", a)
	}
}

func TestProjectNameSanitizes(t *testing.T) {
	got := ProjectName("  Müller & Söhne GmbH!  ", "user1234")
	if strings.ContainsAny(got, " &!ÄÖÜäöü") {
		t.Fatalf("unsanitized name: %q", got)
	}
	if !strings.HasPrefix(got, "siteforge-") || !strings.HasSuffix(got, "-user1234") {
		t.Fatalf("name = %q", got)
	}
}

func TestProjectNameCapsLength(t *testing.T) {
	long := strings.Repeat("verylongbrandname", 10)
	got := ProjectName(long, "user1234")
	if len(got) > 58 {
		t.Fatalf("name too long (%d): %q", len(got), got)
	}
}

func TestProjectNameEmptyBrand(t *testing.T) {
	got := ProjectName("!!!", "user1234")
	if got != "siteforge-site-user1234" {
		t.Fatalf("name = %q", got)
	}
}
