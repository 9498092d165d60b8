// Package figma recognizes Figma share links and derives embeddable viewer URLs.
package figma

import "strings"

const (
	hostMarker  = "figma.com"
	protoMarker = "/proto/"
	fileMarker  = "/file/"

	embedMarker = "/embed?embed_host=share&url="
	embedSuffix = "&chrome=DOCUMENTATION"
)

// IsShareURL reports whether u points at a Figma prototype or file view.
// A valid share URL references the Figma host and one of the two view paths.
func IsShareURL(u string) bool {
	if !strings.Contains(u, hostMarker) {
		return false
	}
	return strings.Contains(u, protoMarker) || strings.Contains(u, fileMarker)
}

// EmbedURL converts a share URL into the inline-viewer form by substituting
// the view-path marker and appending the viewer chrome parameter.
// Unrecognized shapes are returned unchanged.
func EmbedURL(u string) string {
	switch {
	case strings.Contains(u, protoMarker):
		return strings.Replace(u, protoMarker, embedMarker, 1) + embedSuffix
	case strings.Contains(u, fileMarker):
		return strings.Replace(u, fileMarker, embedMarker, 1) + embedSuffix
	default:
		return u
	}
}
