package domain

// IsVisible decides whether viewerID may see route. A nil viewer is anonymous.
func IsVisible(route *Route, viewerID *int64) bool {
	if route == nil {
		return false
	}
	if route.OwnerID == nil {
		return true
	}
	if route.IsPublic {
		return true
	}
	return viewerID != nil && *viewerID == *route.OwnerID
}
