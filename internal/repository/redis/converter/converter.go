package converter

import (
	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует товары между domain и моделью кэша.
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) ProductRedisModel
	ToEntity(model *ProductRedisModel) (domain.Product, error)
	ToArrRedisModel(entities []domain.Product) []ProductRedisModel
	ToArrEntity(models []ProductRedisModel) ([]domain.Product, error)
}

// CartConverter преобразует корзину между domain и моделью кэша.
type CartConverter interface {
	ToRedisModel(cart *domain.Cart) *CartRedisModel
	ToEntity(model *CartRedisModel) (*domain.Cart, error)
}

type productConverter struct{}

type cartConverter struct {
	products productConverter
}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

func NewCartConverter() CartConverter {
	return cartConverter{}
}

func (productConverter) ToRedisModel(p *domain.Product) ProductRedisModel {
	return ProductRedisModel{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.String(),
		CategoryID:    p.CategoryID,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		IsNew:         p.IsNew,
		StockQuantity: p.StockQuantity,
	}
}

func (productConverter) ToEntity(m *ProductRedisModel) (domain.Product, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         price,
		CategoryID:    m.CategoryID,
		Category:      m.Category,
		ImageURL:      m.ImageURL,
		IsNew:         m.IsNew,
		StockQuantity: m.StockQuantity,
	}, nil
}

func (c productConverter) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	out := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		out = append(out, c.ToRedisModel(&entities[i]))
	}
	return out
}

func (c productConverter) ToArrEntity(models []ProductRedisModel) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(models))
	for i := range models {
		p, err := c.ToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (c cartConverter) ToRedisModel(cart *domain.Cart) *CartRedisModel {
	items := cart.Items()
	model := &CartRedisModel{Items: make([]LineItemRedisModel, 0, len(items))}
	for i := range items {
		model.Items = append(model.Items, LineItemRedisModel{
			Product:  c.products.ToRedisModel(&items[i].Product),
			Quantity: items[i].Quantity,
		})
	}
	return model
}

func (c cartConverter) ToEntity(model *CartRedisModel) (*domain.Cart, error) {
	items := make([]domain.LineItem, 0, len(model.Items))
	for i := range model.Items {
		p, err := c.products.ToEntity(&model.Items[i].Product)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.LineItem{Product: p, Quantity: model.Items[i].Quantity})
	}
	return domain.RestoreCart(items), nil
}
