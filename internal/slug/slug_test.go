package slug

import (
	"net/url"
	"testing"
)

func TestSlugifyArabic(t *testing.T) {
	got := Slugify("عرض-خاص 2024!!!")
	if got != "عرض-خاص-2024" {
		t.Fatalf("unexpected slug: %q", got)
	}
}

func TestSlugifyCollapsesAndTrims(t *testing.T) {
	cases := map[string]string{
		"  Hello   World  ":  "hello-world",
		"A--B----C":          "a-b-c",
		"-leading-trailing-": "leading-trailing",
		"!!!":                "",
		"":                   "",
		"قالب متجر إلكتروني": "قالب-متجر-إلكتروني",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestForProductFallback(t *testing.T) {
	if got := ForProduct(42, "!!!"); got != "product-42" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
	if got := ForProduct(7, "قالب متجر"); got != "قالب-متجر-7" {
		t.Fatalf("unexpected slug: %q", got)
	}
}

func TestExtractIDRoundTrip(t *testing.T) {
	names := []string{"قالب متجر إلكتروني", "Modern Theme", "عرض-خاص 2024!!!", "!!!", "x"}
	ids := []int64{1, 99, 12345}
	for _, name := range names {
		for _, id := range ids {
			s := ForProduct(id, name)
			if got := ExtractID(s); got != id {
				t.Fatalf("ExtractID(ForProduct(%d, %q)) = %d", id, name, got)
			}
			if !IsValid(s) {
				t.Fatalf("IsValid(%q) = false", s)
			}
		}
	}
}

func TestExtractIDMissingSuffix(t *testing.T) {
	for _, s := range []string{"", "no-id-here-", "فقط-اسم", "trailing95x"} {
		if got := ExtractID(s); got != 0 {
			t.Fatalf("ExtractID(%q) = %d, want 0", s, got)
		}
	}
}

func TestExtractIDURLEncoded(t *testing.T) {
	s := url.PathEscape(ForProduct(31, "قالب متجر"))
	if got := ExtractID(s); got != 31 {
		t.Fatalf("ExtractID(%q) = %d, want 31", s, got)
	}
	if !IsValid(s) {
		t.Fatalf("IsValid(%q) = false", s)
	}
}

func TestIsValidRejects(t *testing.T) {
	for _, s := range []string{"", "no-suffix", "UPPER-5", "under_score-5", "-5"} {
		if IsValid(s) {
			t.Fatalf("IsValid(%q) = true", s)
		}
	}
}
