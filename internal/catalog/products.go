package catalog

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/currency"
)

var bdt = currency.MustParseISO("BDT")

func product(id int64, name string, price, original int64, image, brand string, rating float64, featured bool) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          name,
		Price:         domain.NewMoney(price, bdt),
		OriginalPrice: domain.NewMoney(original, bdt),
		Image:         image,
		Category:      "Electronics",
		Brand:         brand,
		Rating:        rating,
		Featured:      featured,
	}
}

// seed is the mocked listing data.
var seed = []domain.Product{
	product(1, "Galaxy S22 Ultra", 32999, 74999, "/Assets/oppo-a6-back-side-image.webp", "Samsung", 4.5, false),
	product(2, "Galaxy M13 (4GB | 64 GB )", 10499, 14999, "/Assets/Galaxy-M13.webp", "Samsung", 4.2, true),
	product(3, "Galaxy M33 (4GB | 64 GB )", 16999, 24999, "/Assets/samsung-galaxy-m33.webp", "Samsung", 4.3, false),
	product(4, "Galaxy M53 (4GB | 64 GB )", 31999, 40999, "/Assets/Galaxy-M53.png", "Samsung", 4.4, false),
	product(5, "Galaxy S22 Ultra", 67999, 85999, "/Assets/Galaxy-S22-Ultra.png", "Samsung", 4.6, false),
	product(6, "Galaxy A54 (8GB | 128 GB )", 28999, 34999, "/Assets/Galaxy-A54.png", "Samsung", 4.3, false),
	product(7, "Galaxy A34 (6GB | 128 GB )", 22999, 27999, "/Assets/Galaxy-A34.png", "Samsung", 4.1, false),
	product(8, "Galaxy S23 (8GB | 256 GB )", 54999, 69999, "/Assets/Galaxy-S23.png", "Samsung", 4.7, false),
	product(9, "Galaxy Note 20 Ultra", 59999, 79999, "/Assets/GalaxyNote20Ultra.png", "Samsung", 4.5, false),
	product(10, "Galaxy Z Fold 4", 124999, 149999, "/Assets/Galaxy-Z-Fold.png", "Samsung", 4.8, false),
	product(11, "Galaxy A14 (4GB | 64 GB )", 11999, 15999, "/Assets/Galaxy-A14.png", "Samsung", 4.0, false),
	product(12, "Galaxy A24 (6GB | 128 GB )", 18999, 22999, "/Assets/Galaxy-A24.png", "Samsung", 4.2, false),
	product(13, "Galaxy S21 FE (8GB | 128 GB )", 39999, 49999, "/Assets/Galaxy-S21FE.png", "Samsung", 4.4, false),
	product(14, "Galaxy M14 (4GB | 64 GB )", 12999, 17999, "/Assets/Galaxy-M14.png", "Samsung", 4.1, false),
	product(15, "Galaxy A73 (8GB | 128 GB )", 34999, 42999, "/Assets/Galaxy-A73.png", "Samsung", 4.3, false),
	product(16, "Galaxy S23 Ultra (12GB | 256 GB )", 94999, 119999, "/Assets/Galaxy-S23.png", "Samsung", 4.9, false),
	product(17, "Galaxy M54 (8GB | 128 GB )", 26999, 32999, "/Assets/Galaxy-M54.png", "Samsung", 4.2, false),
	product(18, "Galaxy A52s (8GB | 128 GB )", 24999, 29999, "/Assets/Galaxy-A52s.png", "Samsung", 4.3, false),
	product(19, "Galaxy Z Flip 4", 79999, 99999, "/Assets/Galaxy-Z-Flip-4.png", "Samsung", 4.6, false),
	product(20, "Galaxy A04 (3GB | 32 GB )", 7999, 9999, "/Assets/Galaxy-A04.png", "Samsung", 3.9, false),
}
