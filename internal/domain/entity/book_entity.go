package entity

// Category groups books; many books belong to one category.
type Category struct {
	ID   int64
	Name string
}

// Author of a book.
type Author struct {
	ID   int64
	Name string
}

// Book is a catalog entry. Category and Author are optional references.
type Book struct {
	ID          int64
	Title       string
	Description string
	CoverURL    string
	Category    *Category
	Author      *Author
}

// CategoryName returns the category name or "" when the book is uncategorized.
func (b *Book) CategoryName() string {
	if b.Category == nil {
		return ""
	}
	return b.Category.Name
}

// AuthorName returns the author name or "" when the book has no author.
func (b *Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name
}

// CategoryCount is the number of books filed under one category name.
type CategoryCount struct {
	Name  string
	Total int64
}
