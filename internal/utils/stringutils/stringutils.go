package stringutils

import "fmt"

// Placeholder returns the PostgreSQL positional parameter for a 1-based index.
func Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}
