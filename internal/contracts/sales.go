package contracts

// Seller is a seller identity record
// ⭐ SSOT: 입력 데이터셋 모델은 이 파일에서만 정의
type Seller struct {
	ID        ID     `json:"id" yaml:"id" validate:"required"`
	FirstName string `json:"first_name" yaml:"first_name" validate:"required"`
	LastName  string `json:"last_name" yaml:"last_name" validate:"required"`
	StartDate string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Position  string `json:"position,omitempty" yaml:"position,omitempty"`
}

// FullName returns "first last"
func (s Seller) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Product is a catalog entry keyed by SKU
type Product struct {
	SKU           string  `json:"sku" yaml:"sku"`
	Name          string  `json:"name,omitempty" yaml:"name,omitempty"`
	Category      string  `json:"category,omitempty" yaml:"category,omitempty"`
	Price         Numeric `json:"price,omitzero" yaml:"price"`                   // sale price
	PurchasePrice Numeric `json:"purchase_price,omitzero" yaml:"purchase_price"` // cost
}

// LineItem is one SKU/quantity pair within a purchase record
type LineItem struct {
	SKU       string  `json:"sku" yaml:"sku"`
	Quantity  Numeric `json:"quantity,omitzero" yaml:"quantity"`
	SalePrice Numeric `json:"sale_price,omitzero" yaml:"sale_price"`
	Discount  Numeric `json:"discount,omitzero" yaml:"discount"` // percent, 0..100
}

// PurchaseRecord is one transaction (receipt)
type PurchaseRecord struct {
	ReceiptID   string     `json:"receipt_id,omitempty" yaml:"receipt_id,omitempty"`
	Date        string     `json:"date,omitempty" yaml:"date,omitempty"`
	SellerID    ID         `json:"seller_id" yaml:"seller_id"`
	CustomerID  string     `json:"customer_id,omitempty" yaml:"customer_id,omitempty"`
	TotalAmount Numeric    `json:"total_amount,omitzero" yaml:"total_amount"`
	Items       []LineItem `json:"items" yaml:"items"`
}

// Dataset is one batch snapshot of commercial activity.
// A nil slice means the collection was not supplied; an empty one means it was supplied empty.
type Dataset struct {
	Sellers         []Seller         `json:"sellers" yaml:"sellers"`
	Products        []Product        `json:"products" yaml:"products"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" yaml:"purchase_records"`
}
