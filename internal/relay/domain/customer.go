package domain

// Customer is the slice of a processor customer record the summarizer needs.
type Customer struct {
	Name     string
	Deleted  bool
	Metadata map[string]string
}
