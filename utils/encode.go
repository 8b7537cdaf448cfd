package utils

import "encoding/base64"

// PNGDataURI encodes PNG bytes as a data URI suitable for JSON transport and
// vision message parts.
func PNGDataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
