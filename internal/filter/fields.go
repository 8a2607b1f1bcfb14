package filter

import (
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
)

// MessagePath is where log lines keep their free-text message
const MessagePath = "event.json.message"

// short names accepted in place of full gjson paths
var fieldAliases = map[string]string{
	"level":   "event.json.level",
	"message": MessagePath,
	"fault":   "event.json.fault",
	"req_url": "event.json.req_url",
	"tag":     "tags",
	"id":      "id",
}

// FieldPath expands a short field name to its gjson path.
// Anything that is not an alias is used as a path verbatim.
func FieldPath(field string) string {
	if p, ok := fieldAliases[strings.ToLower(field)]; ok {
		return p
	}
	return field
}

func fieldValue(event domain.Event, path string) string {
	return event.Get(path).String()
}
