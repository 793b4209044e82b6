package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/scorecard/internal/contracts"
)

// Querier is the subset of pgxpool.Pool used by PostgresSource
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the dataset from the sales schema
// ⭐ SSOT: 판매 데이터 DB 조회는 여기서만
type PostgresSource struct {
	db Querier
}

// NewPostgresSource creates a Postgres source
func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// Name returns the source description
func (s *PostgresSource) Name() string {
	return "postgres:sales"
}

// Load reads all sellers, products and purchase records.
// Records keep receipt order; items keep line order.
func (s *PostgresSource) Load(ctx context.Context) (*contracts.Dataset, error) {
	sellers, err := s.loadSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sellers: %w", err)
	}

	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load purchase records: %w", err)
	}

	items, err := s.loadItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load purchase items: %w", err)
	}

	return &contracts.Dataset{
		Sellers:         sellers,
		Products:        products,
		PurchaseRecords: attachItems(records, items),
	}, nil
}

func (s *PostgresSource) loadSellers(ctx context.Context) ([]contracts.Seller, error) {
	query := `
		SELECT id, first_name, last_name,
		       COALESCE(start_date::text, ''), COALESCE(position, '')
		FROM sales.sellers
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sellers := []contracts.Seller{}
	for rows.Next() {
		var sl contracts.Seller
		if err := rows.Scan(&sl.ID, &sl.FirstName, &sl.LastName, &sl.StartDate, &sl.Position); err != nil {
			return nil, err
		}
		sellers = append(sellers, sl)
	}
	return sellers, rows.Err()
}

func (s *PostgresSource) loadProducts(ctx context.Context) ([]contracts.Product, error) {
	query := `
		SELECT sku, COALESCE(name, ''), COALESCE(category, ''), price, purchase_price
		FROM sales.products
		ORDER BY sku
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []contracts.Product{}
	for rows.Next() {
		var (
			p               contracts.Product
			price, purchase *float64
		)
		if err := rows.Scan(&p.SKU, &p.Name, &p.Category, &price, &purchase); err != nil {
			return nil, err
		}
		p.Price = nullableNumeric(price)
		p.PurchasePrice = nullableNumeric(purchase)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *PostgresSource) loadRecords(ctx context.Context) ([]contracts.PurchaseRecord, error) {
	query := `
		SELECT receipt_id, COALESCE(date::text, ''), seller_id,
		       COALESCE(customer_id, ''), total_amount
		FROM sales.purchase_records
		ORDER BY date, receipt_id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []contracts.PurchaseRecord{}
	for rows.Next() {
		var (
			r     contracts.PurchaseRecord
			total *float64
		)
		if err := rows.Scan(&r.ReceiptID, &r.Date, &r.SellerID, &r.CustomerID, &total); err != nil {
			return nil, err
		}
		r.TotalAmount = nullableNumeric(total)
		records = append(records, r)
	}
	return records, rows.Err()
}

// receiptItem is one purchase_items row
type receiptItem struct {
	receiptID string
	item      contracts.LineItem
}

func (s *PostgresSource) loadItems(ctx context.Context) ([]receiptItem, error) {
	query := `
		SELECT receipt_id, COALESCE(sku, ''), quantity, sale_price, discount
		FROM sales.purchase_items
		ORDER BY receipt_id, line_no
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []receiptItem
	for rows.Next() {
		var (
			ri                        receiptItem
			quantity, price, discount *float64
		)
		if err := rows.Scan(&ri.receiptID, &ri.item.SKU, &quantity, &price, &discount); err != nil {
			return nil, err
		}
		ri.item.Quantity = nullableNumeric(quantity)
		ri.item.SalePrice = nullableNumeric(price)
		ri.item.Discount = nullableNumeric(discount)
		items = append(items, ri)
	}
	return items, rows.Err()
}

// attachItems groups items under their receipt; every record gets a non-nil slice
func attachItems(records []contracts.PurchaseRecord, items []receiptItem) []contracts.PurchaseRecord {
	byReceipt := make(map[string][]contracts.LineItem, len(records))
	for _, ri := range items {
		byReceipt[ri.receiptID] = append(byReceipt[ri.receiptID], ri.item)
	}

	for i := range records {
		lines := byReceipt[records[i].ReceiptID]
		if lines == nil {
			lines = []contracts.LineItem{}
		}
		records[i].Items = lines
	}
	return records
}

// nullableNumeric maps SQL NULL to an absent value
func nullableNumeric(v *float64) contracts.Numeric {
	if v == nil {
		return contracts.Numeric{}
	}
	return contracts.Num(*v)
}
