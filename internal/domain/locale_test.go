package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		raw  string
		want Locale
	}{
		{"en", LocaleEnglish},
		{"fr", LocaleFrench},
		{"ar", LocaleArabic},
		{"ar-darija", LocaleDarija},
		{"fr-FR", LocaleFrench},
		{"fr-CA", LocaleFrench},
		{"ar-MA", LocaleArabic},
		{"en-GB", LocaleEnglish},
		{"", DefaultLocale},
		{"not-a-tag!", DefaultLocale},
		{"ja", DefaultLocale},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLocale(tt.raw))
		})
	}
}

func TestIsValidLocale(t *testing.T) {
	assert.True(t, IsValidLocale(LocaleDarija))
	assert.False(t, IsValidLocale("es"))
}

func TestIsValidTimeBucket(t *testing.T) {
	assert.True(t, IsValidTimeBucket(TimeBucketLateNight))
	assert.False(t, IsValidTimeBucket("noonish"))
}

func TestIsValidAgeBucket(t *testing.T) {
	assert.True(t, IsValidAgeBucket(AgeBucketYoungAdult))
	assert.False(t, IsValidAgeBucket("elder"))
}
