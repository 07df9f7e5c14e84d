package util

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSanitizeBaseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"site plan", "site_plan"},
		{"floor-plan_v2", "floor-plan_v2"},
		{"résumé photo!", "r_sum__photo_"},
		{"../../etc/passwd", "______etc_passwd"},
		{"CAD Model (final)", "CAD_Model__final_"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := SanitizeBaseName(tc.in); got != tc.want {
				t.Fatalf("SanitizeBaseName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestUniqueFilename_SanitizesAndTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	got := UniqueFilename("site plan.jpg", "image/jpeg", now)

	want := fmt.Sprintf("site_plan-%d.jpg", now.UnixNano())
	if got != want {
		t.Fatalf("UniqueFilename = %q, want %q", got, want)
	}
}

func TestUniqueFilename_DistinctForSameNameAtDifferentInstants(t *testing.T) {
	base := time.Now()

	first := UniqueFilename("photo.png", "image/png", base)
	second := UniqueFilename("photo.png", "image/png", base.Add(time.Nanosecond))

	if first == second {
		t.Fatalf("expected distinct filenames, both were %q", first)
	}
}

func TestUniqueFilename_FallsBackToContentTypeExtension(t *testing.T) {
	got := UniqueFilename("snapshot", "image/png", time.Now())

	if !strings.HasSuffix(got, ".png") {
		t.Fatalf("expected .png suffix from content type, got %q", got)
	}
}

func TestUniqueFilename_UppercaseExtensionLowered(t *testing.T) {
	got := UniqueFilename("PHOTO.JPG", "", time.Now())

	if !strings.HasSuffix(got, ".jpg") {
		t.Fatalf("expected lowered .jpg suffix, got %q", got)
	}
	if !strings.HasPrefix(got, "PHOTO-") {
		t.Fatalf("expected base name preserved, got %q", got)
	}
}

func TestUniqueFilename_UnusableBaseGetsGenerated(t *testing.T) {
	got := UniqueFilename("....jpg", "image/jpeg", time.Now())

	if strings.HasPrefix(got, "_") || strings.HasPrefix(got, "-") {
		t.Fatalf("expected generated base name, got %q", got)
	}
	if !strings.HasSuffix(got, ".jpg") {
		t.Fatalf("expected .jpg suffix, got %q", got)
	}
}
