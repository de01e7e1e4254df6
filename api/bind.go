package api

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
)

// bindStrictJSON decodes the request body into obj, rejecting unknown fields.
// Patch endpoints use it so typos in field names fail loudly instead of being
// silently ignored.
func bindStrictJSON(c *gin.Context, obj interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(obj)
}

// parseDateTime accepts "2006-01-02 15:04:05" or "2006-01-02" in local time.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// parseDate accepts "2006-01-02" in local time.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
