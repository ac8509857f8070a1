package converter

// ProductRedisModel — снимок товара в кэше. Цена хранится строкой, чтобы не терять точность.
type ProductRedisModel struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Price         string `json:"price"`
	CategoryID    int64  `json:"category_id"`
	Category      string `json:"category"`
	ImageURL      string `json:"image_url,omitempty"`
	IsNew         bool   `json:"is_new"`
	StockQuantity *int32 `json:"stock_quantity,omitempty"`
}

// CatalogRedisModel хранит весь активный каталог одним значением.
type CatalogRedisModel struct {
	Products []ProductRedisModel `json:"products"`
}

type LineItemRedisModel struct {
	Product  ProductRedisModel `json:"product"`
	Quantity int               `json:"quantity"`
}

type CartRedisModel struct {
	Items []LineItemRedisModel `json:"items"`
}
