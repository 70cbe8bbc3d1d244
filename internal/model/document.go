package model

// DocumentRecord maps a generated document id to the filename it was
// uploaded under. The extracted text lives on disk as <ID>.pdf.
type DocumentRecord struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// StoredName is the file name used for the document's text in the upload dir.
func (d DocumentRecord) StoredName() string {
	return StoredName(d.ID)
}

func StoredName(id string) string {
	return id + ".pdf"
}
