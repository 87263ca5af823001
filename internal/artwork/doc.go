// Package artwork turns cover art into the image files the catalog page
// references: a square JPEG and WebP per album, plus WebP/AVIF siblings for
// every raster image of the site.
package artwork
