// Package model defines the data structures shared by the catalog engine,
// the scraper and the admin surfaces.
//
// # Entries
//
// Entry is one album on the catalog page:
//
//	e := model.Entry{
//	    Artist:  "Rush",
//	    Album:   "Moving Pictures",
//	    Link:    "https://rush.bandcamp.com/album/moving-pictures",
//	    Artwork: model.Artwork{WebP: "rush-moving-pictures.webp", JPEG: "rush-moving-pictures.jpg"},
//	}
//
// # Schema
//
// Schema describes the document layout as data: the ordered sections (display
// name, machine key, markup style) and the shelf capacity. The engine in
// package catalog is parameterized by a Schema instead of hardcoding one page
// variant.
//
//	schema := &model.Schema{
//	    Sections:      []model.Section{{Name: "Metal", Key: "metal", Style: model.StyleCover}},
//	    ShelfCapacity: 4,
//	}
package model
