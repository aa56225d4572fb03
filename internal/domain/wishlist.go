package domain

// WishlistEntry has no quantity, presence is binary. OriginalPrice is optional and zero when unset.
type WishlistEntry struct {
	ID            int64
	Name          string
	Price         Money
	OriginalPrice Money
	Image         string
}

func NewWishlistEntry(item Item) WishlistEntry {
	return WishlistEntry{
		ID:            item.ID,
		Name:          item.Name,
		Price:         item.Price,
		OriginalPrice: item.OriginalPrice,
		Image:         item.Image,
	}
}

func (e WishlistEntry) Item() Item {
	return Item{
		ID:            e.ID,
		Name:          e.Name,
		Price:         e.Price,
		OriginalPrice: e.OriginalPrice,
		Image:         e.Image,
	}
}
