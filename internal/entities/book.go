package entities

import "strings"

// Book is a locally cached copy of Open Library work metadata.
// Rows are created lazily on the first successful catalog lookup for a
// work OLID and are never updated or deleted afterwards.
type Book struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	WorkOLID      string `gorm:"column:work_olid;uniqueIndex;size:50" json:"work_olid"`
	Title         string `gorm:"size:512" json:"title,omitempty"`
	Authors       string `gorm:"size:512" json:"authors,omitempty"` // joined with ", "
	CoverURL      string `gorm:"size:2048" json:"cover_url,omitempty"`
	PublishedYear int    `json:"published_year,omitempty"`
}

// AuthorList splits the stored authors string back into a slice.
// Splitting on the exact join delimiter keeps names containing a bare
// comma intact.
func (b *Book) AuthorList() []string {
	if b == nil || b.Authors == "" {
		return []string{}
	}
	parts := strings.Split(b.Authors, ", ")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}

// JoinAuthors builds the stored representation of an author list.
func JoinAuthors(authors []string) string {
	return strings.Join(authors, ", ")
}
