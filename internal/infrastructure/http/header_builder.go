package httpinfra

const githubMediaType = "application/vnd.github+json"

// MergeHeaders returns base overlaid with extra. Empty values in extra
// remove the header.
func MergeHeaders(base map[string]string, extra map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// commonHeaders are sent with every request
func commonHeaders(userAgent string) map[string]string {
	return map[string]string{"User-Agent": userAgent}
}

// apiHeaders are added to requests for the GitHub API host
func apiHeaders(token string) map[string]string {
	headers := map[string]string{"Accept": githubMediaType}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}
