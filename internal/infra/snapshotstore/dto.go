package snapshotstore

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// document mirrors the on-disk layout. Pointer slices let Load tell a missing key
// from an empty list.
type document struct {
	Books        *[]bookDTO        `json:"books"`
	Patrons      *[]patronDTO      `json:"patrons"`
	Transactions *[]transactionDTO `json:"transactions"`
}

type bookDTO struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ISBN     string  `json:"isbn"`
	Quantity flexInt `json:"quantity"`
}

type patronDTO struct {
	Name          string    `json:"name"`
	ID            string    `json:"id"`
	ContactInfo   string    `json:"contact_info"`
	BorrowedBooks []bookDTO `json:"borrowed_books"`
}

type transactionDTO struct {
	ID           string    `json:"id,omitempty"`
	Book         bookDTO   `json:"book"`
	Patron       patronDTO `json:"patron"`
	Status       string    `json:"status,omitempty"`
	CheckedOutAt string    `json:"checked_out_at,omitempty"`
	DueDate      string    `json:"due_date"`
	ReturnedAt   string    `json:"returned_at,omitempty"`
}

// flexInt accepts a JSON number or a numeric string; older files stored quantity
// exactly as it was typed at the prompt.
type flexInt int

func (f flexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	s := string(b)
	if b[0] == '"' {
		uq, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = strings.TrimSpace(uq)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("quantity %s is not an integer", string(b))
	}
	*f = flexInt(n)
	return nil
}
