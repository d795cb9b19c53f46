package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known profile host.
type Platform string

const (
	// PlatformGitHub is a GitHub profile or README page
	PlatformGitHub Platform = "github"
	// PlatformLinkedIn is a public LinkedIn profile
	PlatformLinkedIn Platform = "linkedin"
	// PlatformUnknown is a self-hosted resume or portfolio page
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the profile host from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case host == "github.com" || strings.HasSuffix(host, ".github.com"):
		return PlatformGitHub
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return PlatformLinkedIn
	default:
		return PlatformUnknown
	}
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGitHub:
		return []string{
			"article.markdown-body", // Profile README
			".js-profile-editable-area",
			"[itemtype='http://schema.org/Person']",
			"main",
		}
	case PlatformLinkedIn:
		return []string{
			".core-section-container",
			".top-card-layout",
			"main",
		}
	default:
		return ResumeSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Social and share buttons
		".social-share",
		".share-buttons",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Contact and sign-up forms
		"form",
	}

	switch platform {
	case PlatformGitHub:
		return append(common,
			".js-pinned-items-reorder-container",
			".js-yearly-contributions",
			".Popover",
		)
	case PlatformLinkedIn:
		return append(common,
			".join-form",
			".authwall-join-form",
			".sign-in-modal",
			".aside-section-container",
		)
	default:
		return common
	}
}
