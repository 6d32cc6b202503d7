package mb

import "strings"

var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// fileURI builds a "file:" DSN for filePath. SQLite decodes %XX escapes in the path
// and treats "?" and "#" as separators, so those characters are escaped.
func fileURI(filePath, query string) string {
	return "file:" + uriPathEscaper.Replace(filePath) + "?" + query
}
