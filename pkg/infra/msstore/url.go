package msstore

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/domain/types"
)

// Store product IDs look like "9PDXGNCFSCZV" (UWP) or "XP89DCGQ3K6VLD"
// style Win32 listings; both start with 9 or X followed by alphanumerics.
var productIDRegex = regexp.MustCompile(`^(?i)[9X][A-Z0-9]{11,13}$`)

// ParseProductURL extracts the product ID from a store product page URL.
// Accepted shapes include:
//
//	https://apps.microsoft.com/detail/9pdxgncfsczv
//	https://apps.microsoft.com/detail/app-name/9PDXGNCFSCZV
//	https://www.microsoft.com/en-us/p/app-name/9pdxgncfsczv
//	https://www.microsoft.com/store/apps/9pdxgncfsczv
func (c *Client) ParseProductURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse product URL",
			goerr.T(types.ErrTagResolution), goerr.V("url", raw))
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", goerr.New("product URL must be http(s)",
			goerr.T(types.ErrTagResolution), goerr.V("url", raw))
	}

	host := strings.ToLower(u.Hostname())
	if host != "microsoft.com" && !strings.HasSuffix(host, ".microsoft.com") {
		return "", goerr.New("not a Microsoft Store URL",
			goerr.T(types.ErrTagResolution), goerr.V("host", host))
	}

	// The product ID is the last path segment matching the ID shape; slugs
	// and market prefixes precede it.
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if productIDRegex.MatchString(segments[i]) {
			return strings.ToUpper(segments[i]), nil
		}
	}

	return "", goerr.New("no product ID found in URL",
		goerr.T(types.ErrTagResolution), goerr.V("url", raw))
}
