package synth

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// mergeHeaders folds the single- and multi-value header maps of an envelope.
// For a key present in both, the multi-value list wins and keeps its order.
func mergeHeaders(single map[string]string, multi map[string][]string) http.Header {
	h := make(http.Header, len(single)+len(multi))

	for _, k := range sortedKeys(multi) {
		for _, v := range multi[k] {
			h.Add(k, v)
		}
	}
	for _, k := range sortedKeys(single) {
		if _, ok := h[http.CanonicalHeaderKey(k)]; ok {
			continue
		}
		h.Set(k, single[k])
	}

	return h
}

// mergeQuery folds the single- and multi-value query maps of an envelope.
// For a key present in both, the multi-value list wins.
func mergeQuery(single map[string]string, multi map[string][]string) url.Values {
	q := make(url.Values, len(single)+len(multi))

	for k, vs := range multi {
		q[k] = append([]string(nil), vs...)
	}
	for k, v := range single {
		if _, ok := q[k]; ok {
			continue
		}
		q[k] = []string{v}
	}

	return q
}

// joinRawQuery flattens q into repeated key=value pairs without re-encoding
func joinRawQuery(q url.Values) string {
	var b strings.Builder
	for _, k := range sortedKeys(q) {
		for _, v := range q[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}

func firstForwardedFor(h http.Header) string {
	xff := h.Get("X-Forwarded-For")
	if xff == "" {
		return ""
	}
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
