package domain

// Item is the catalog record a shopper adds to the cart or the wishlist.
// Validity of ID and Price is the caller's responsibility.
type Item struct {
	ID            int64
	Name          string
	Price         Money
	OriginalPrice Money
	Image         string
}

type CartLine struct {
	ID            int64
	Name          string
	Price         Money
	OriginalPrice Money
	Image         string
	Quantity      int
}

func NewCartLine(item Item, quantity int) CartLine {
	return CartLine{
		ID:            item.ID,
		Name:          item.Name,
		Price:         item.Price,
		OriginalPrice: item.OriginalPrice,
		Image:         item.Image,
		Quantity:      quantity,
	}
}

func (l CartLine) Item() Item {
	return Item{
		ID:            l.ID,
		Name:          l.Name,
		Price:         l.Price,
		OriginalPrice: l.OriginalPrice,
		Image:         l.Image,
	}
}
