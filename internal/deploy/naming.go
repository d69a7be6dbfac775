package deploy

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
)

const (
	namePrefix  = "siteforge-"
	maxBaseName = 35 // keeps the full name under the provider's 58-char cap
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// ProjectName derives the hosting project name from the brand. Named users
// get a stable suffix from their id so redeploys land on the same project;
// anonymous deploys get a fresh random suffix every time.
func ProjectName(brandName, userID string) string {
	base := nonAlnumRe.ReplaceAllString(strings.ToLower(brandName), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "site"
	}
	if len(base) > maxBaseName {
		base = strings.Trim(base[:maxBaseName], "-")
	}
	suffix := randomSuffix()
	if userID != "" {
		suffix = strings.ToLower(userID)
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
	}
	return namePrefix + base + "-" + suffix
}

func randomSuffix() string {
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
