package internallogger

import (
	"sort"

	"go.uber.org/zap"
)

// fieldsFromMap converts a map into sorted zap fields for stable output.
func fieldsFromMap(m map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, m[k]))
	}
	return fields
}
