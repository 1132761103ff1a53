package catalog

import (
	"strings"
)

const noLoansLine = "No books are currently on loan."

// Render returns the multi-line display text of the catalog:
//
//	Library: <name>
//	Books:
//	  - <book>
//	Readers:
//	  - <reader>
//	Loans:
//	  - <isbn> -> <reader>, since <YYYY-MM-DD>
//
// With an empty ledger the Loans section is replaced by "No books are currently on loan.".
func (c *Catalog) Render() string {
	var sb strings.Builder

	sb.WriteString("Library: " + c.name + "\n")

	sb.WriteString("Books:\n")
	for _, b := range c.books {
		sb.WriteString("  - " + b.String() + "\n")
	}

	sb.WriteString("Readers:\n")
	for _, r := range c.readers {
		sb.WriteString("  - " + r.String() + "\n")
	}

	if len(c.loanOrder) == 0 {
		sb.WriteString(noLoansLine + "\n")
		return sb.String()
	}

	sb.WriteString("Loans:\n")
	for _, loan := range c.Loans() {
		sb.WriteString("  - " + loan.String() + "\n")
	}

	return sb.String()
}
