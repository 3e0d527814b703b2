package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxJSONBody caps JSON request bodies. Document content is the largest
// payload this API accepts as JSON.
const maxJSONBody = 10 << 20

// ParseJSON decodes the request body into dest. The body is size-limited;
// MaxBytesReader needs w so an oversize body gets a proper 413.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
