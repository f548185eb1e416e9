package errors

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Coordinates are out of range",
	)

	ErrInvalidViewport = New(
		"INVALID_VIEWPORT",
		"Viewport bounds are invalid",
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Zoom level is not a finite number",
	)

	ErrClusterNotFound = New(
		"CLUSTER_NOT_FOUND",
		"No cluster with the specified id",
	)

	ErrCatalogRead = New(
		"CATALOG_READ_FAILED",
		"Failed to read photo catalog",
	)

	ErrCatalogWatch = New(
		"CATALOG_WATCH_FAILED",
		"Failed to watch photo catalog",
	)

	ErrMarkerRejected = New(
		"MARKER_REJECTED",
		"Rendering engine rejected the marker",
	)

	ErrMarkerNotFound = New(
		"MARKER_NOT_FOUND",
		"No mounted marker with the specified ref",
	)

	ErrInvalidConfig = New(
		"INVALID_CONFIG",
		"Configuration failed validation",
	)
)
