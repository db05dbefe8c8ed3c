package orders

// BookDetail is one line of an order: which book and how many copies.
// FID is assigned by the store; lifecycle is tied to the owning Order.
type BookDetail struct {
	FID             int `json:"fid"`
	BookID          int `json:"bookId"`
	OrderedQuantity int `json:"orderedQuantity"`
}

// Order is the persisted aggregate. TotalAmount is always computed
// server-side from inventory prices; any client-supplied value is ignored.
type Order struct {
	ID           int          `json:"id"`
	CustomerName string       `json:"customerName"`
	Address      string       `json:"address"`
	TotalAmount  float64      `json:"totalAmount"`
	BookDetails  []BookDetail `json:"bookDetails"`
}

// Book is the inventory service's record. Not persisted here.
//
// Quantity is overloaded: the inventory service fills it with the stock
// level, and PlaceOrder overwrites it with the ordered quantity before the
// summary goes out. Consumers of the summary read it as the ordered amount.
type Book struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// OrderSummary is the read model returned after a successful placement:
// the persisted order's identity plus the priced books from inventory.
type OrderSummary struct {
	ID           int     `json:"id"`
	CustomerName string  `json:"customerName"`
	Address      string  `json:"address"`
	TotalAmount  float64 `json:"totalAmount"`
	Books        []Book  `json:"books"`
}
