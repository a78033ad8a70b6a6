package models

// CartLine is one (menu item snapshot, quantity) pair in a shopper's cart.
// The menu item is embedded by value so catalog edits after the line was
// added do not change it.
type CartLine struct {
	MenuItem MenuItem `json:"menu_item"`
	Quantity int      `json:"quantity"`
}

// CartState is the full persisted cart: its lines in insertion order plus a
// caller-computed cached total.
type CartState struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}
