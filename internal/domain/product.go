package domain

type Product struct {
	ID            int64
	Name          string
	Price         Money
	OriginalPrice Money
	Image         string
	Category      string
	Brand         string
	Rating        float64
	Featured      bool
}

func (p Product) Item() Item {
	return Item{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
	}
}
