package domain

import "github.com/gosimple/slug"

// ExportFilename builds the download filename for an export. The invoice
// number is slugified so it is always safe in a Content-Disposition
// header; an unnumbered draft exports as "invoice-draft".
func ExportFilename(invoiceNumber, ext string) string {
	name := slug.Make(invoiceNumber)
	if name == "" {
		name = "draft"
	}
	return "invoice-" + name + "." + ext
}
