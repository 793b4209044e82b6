package analysis

import "github.com/wonny/scorecard/internal/contracts"

// Index implements S1: lookup tables for sellers and products.
// Duplicate keys are last-write-wins.
type Index struct {
	Sellers  map[string]contracts.Seller
	Products map[string]contracts.Product
}

// BuildIndex indexes sellers by id and products by SKU
func BuildIndex(data *contracts.Dataset) *Index {
	idx := &Index{
		Sellers:  make(map[string]contracts.Seller, len(data.Sellers)),
		Products: make(map[string]contracts.Product, len(data.Products)),
	}

	for _, seller := range data.Sellers {
		idx.Sellers[seller.ID.String()] = seller
	}
	for _, product := range data.Products {
		idx.Products[product.SKU] = product
	}

	return idx
}

// Seller looks up a seller by id
func (i *Index) Seller(id string) (contracts.Seller, bool) {
	s, ok := i.Sellers[id]
	return s, ok
}

// Product looks up a product by SKU
func (i *Index) Product(sku string) (contracts.Product, bool) {
	p, ok := i.Products[sku]
	return p, ok
}
