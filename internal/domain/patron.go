package domain

// Patron is a registered borrower. Borrowed holds one ISBN per copy currently held,
// in borrow order.
type Patron struct {
	Name     string
	ID       string
	Contact  string
	Borrowed []string
}

func NewPatron(name, id, contact string) *Patron {
	return &Patron{
		Name:     name,
		ID:       id,
		Contact:  contact,
		Borrowed: []string{},
	}
}

// Borrow records a copy as held by the patron. Stock is handled by Transaction.
func (p *Patron) Borrow(isbn string) {
	p.Borrowed = append(p.Borrowed, isbn)
}

// Return drops the first borrowed entry for isbn. It reports false when the patron
// does not hold a copy.
func (p *Patron) Return(isbn string) bool {
	for i, b := range p.Borrowed {
		if b == isbn {
			p.Borrowed = append(p.Borrowed[:i], p.Borrowed[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Patron) HasBorrowed(isbn string) bool {
	for _, b := range p.Borrowed {
		if b == isbn {
			return true
		}
	}
	return false
}
