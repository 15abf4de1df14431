package services

import "strings"

// drsURI builds the drs:// self-reference for a DRS id. DrsServerURI is
// validated at config load to end with a slash.
func drsURI(serverURI, drsID string) string {
	return serverURI + drsID
}

// downloadURL builds the redeemable access URL for a token. The host part
// is derived from the drs:// server URI so both resolve to the same service.
func downloadURL(serverURI, tokenID, signature string) string {
	host := strings.Replace(serverURI, "drs://", "http://", 1)
	return host + "downloads/" + tokenID + "/?signature=" + signature
}
