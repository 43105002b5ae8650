package handlers

import (
	"mime"
	"net/http"
)

func checkContentType(r *http.Request, targets ...string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, target := range targets {
		if mediaType == target {
			return true
		}
	}
	return false
}

// a filter form may be posted without a body, e.g. the clear button.
// ParseForm does not read multipart bodies, so they are refused.
func acceptsFilterForm(r *http.Request) bool {
	if r.Header.Get("Content-Type") == "" {
		return true
	}
	return checkContentType(r, "application/x-www-form-urlencoded")
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(accept)
	return err == nil && mediaType == "application/json"
}
