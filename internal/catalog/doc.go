// Package catalog edits the album catalog page in place.
//
// The page is treated as a flat text buffer, not a DOM. Sections are found by
// their marker comment, containers by their genre attribute, and element ends
// by counting nested tags of one element type. Every operation takes the
// current buffer and returns a new one; reading and writing the file is left
// to package document.
//
// # Layout
//
// A section looks like this (cover style):
//
//	<!-- Prog Section -->
//	<div class="section">
//	    <h2>Prog</h2>
//	    <div class="shelf">
//	        <div class="albums" data-genre="prog">
//	            <a class="album-cover" href="#" data-bandcamp="...">...</a>
//	        </div>
//	    </div>
//	</div>
//
// A shelf holds at most Schema.Capacity entries. New entries always go to the
// last shelf of a genre; a full last shelf gets a new shelf after it.
//
// # Usage
//
//	engine := catalog.New(schema)
//	doc, err := engine.Add(doc, "prog", entry)
//	entries, err := engine.List(doc, "prog")
//	doc, removed, err := engine.Delete(doc, "prog", 2)
//	doc, reports := engine.Sort(doc)
//
// Entries are addressed by their index among all entries of a genre in
// document order. Entries rendered with an ID can be resolved to their current
// index with ResolveID.
package catalog
