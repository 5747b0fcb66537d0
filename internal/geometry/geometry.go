package geometry

// ExportGeometry holds the derived output pixel dimensions and the scale
// factor relative to the on-screen map. Scale is nil when the ratio preset is
// the custom variant: custom output is not a simple multiple of the source.
type ExportGeometry struct {
	Scale       *float64 `json:"scale,omitempty"`
	ImageWidth  int      `json:"imageW"`
	ImageHeight int      `json:"imageH"`
}

// CalculateExportImageSize derives the final output dimensions for an export
// image from the on-screen map size and the requested presets. Returns nil
// when there is no valid source surface to scale from. Unknown preset IDs
// fall back to the registry defaults.
func CalculateExportImageSize(reg *Registry, mapWidth, mapHeight int, ratioID RatioID, resolutionID ResolutionID) *ExportGeometry {
	if mapWidth <= 0 || mapHeight <= 0 {
		return nil
	}

	ratio := reg.Ratio(ratioID)
	resolution := reg.Resolution(resolutionID)

	// Resolution scaling first, then the ratio constraint on the scaled size
	scaledWidth, scaledHeight := resolution.Compute(mapWidth, mapHeight)
	imageWidth, imageHeight := ratio.Compute(scaledWidth, scaledHeight)

	geom := &ExportGeometry{
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
	}
	if !ratio.Custom() {
		scale := resolution.Scale()
		geom.Scale = &scale
	}
	return geom
}

// ScaleFromImageSize computes the scalar that converts on-screen overlay
// coordinates into export-image coordinates. Any non-positive input yields
// the neutral scale 1 to avoid division errors. The larger image axis is the
// basis: width when the image is landscape or square, height otherwise.
func ScaleFromImageSize(imageWidth, imageHeight, mapWidth, mapHeight int) float64 {
	if imageWidth <= 0 || imageHeight <= 0 || mapWidth <= 0 || mapHeight <= 0 {
		return 1
	}
	if imageWidth >= imageHeight {
		return float64(imageWidth) / float64(mapWidth)
	}
	return float64(imageHeight) / float64(mapHeight)
}
