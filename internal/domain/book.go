package domain

// Book is a catalog entry. ISBN is its stable identity; Quantity is the number of
// copies currently on the shelf.
type Book struct {
	Title    string
	Author   string
	ISBN     string
	Quantity int
}

func NewBook(title, author, isbn string, quantity int) *Book {
	return &Book{
		Title:    title,
		Author:   author,
		ISBN:     isbn,
		Quantity: quantity,
	}
}

// SetQuantity overwrites the on-hand count. Bounds are the caller's concern.
func (b *Book) SetQuantity(n int) {
	b.Quantity = n
}

// Available reports whether at least one copy can be checked out.
func (b *Book) Available() bool {
	return b.Quantity > 0
}
