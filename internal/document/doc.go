// Package document persists the catalog page.
//
//	file := document.New("index-new.html", logger)
//	err := file.Update(ctx, func(doc string) (string, error) {
//	    return engine.Add(doc, "prog", entry)
//	})
package document
