package analysis

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/scorecard/internal/contracts"
)

// Validator implements S0: fail-fast checks on the dataset and options
// ⭐ SSOT: 입력 검증은 여기서만
type Validator struct {
	structs *validator.Validate
	diag    Diagnostics
}

// NewValidator creates a validator reporting malformed sellers to diag
func NewValidator(diag Diagnostics) *Validator {
	if diag == nil {
		diag = nopSink{}
	}
	return &Validator{
		structs: validator.New(validator.WithRequiredStructEnabled()),
		diag:    diag,
	}
}

// Validate checks, in order: collections supplied, collections non-empty,
// options supplied, both strategies supplied, every seller well formed.
// Nothing is processed when it returns an error.
func (v *Validator) Validate(data *contracts.Dataset, opts *contracts.Options) error {
	if data == nil || data.Sellers == nil || data.Products == nil || data.PurchaseRecords == nil {
		return fmt.Errorf("%w: sellers, products and purchase_records must be provided", ErrInvalidInput)
	}

	if len(data.Sellers) == 0 || len(data.Products) == 0 || len(data.PurchaseRecords) == 0 {
		return fmt.Errorf("%w: sellers=%d products=%d purchase_records=%d",
			ErrEmptyInput, len(data.Sellers), len(data.Products), len(data.PurchaseRecords))
	}

	if opts == nil {
		return ErrInvalidOptions
	}

	if opts.Revenue == nil || opts.Bonus == nil {
		return ErrMissingStrategy
	}

	for i, seller := range data.Sellers {
		if err := v.validateSeller(i, seller); err != nil {
			return err
		}
	}

	return nil
}

// validateSeller checks the identity fields of one seller
func (v *Validator) validateSeller(index int, seller contracts.Seller) error {
	err := v.structs.Struct(seller)
	if err == nil {
		return nil
	}

	missing := make([]string, 0, 3)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			missing = append(missing, fe.Field())
		}
	}

	v.diag.Error("Malformed seller record", map[string]interface{}{
		"index":      index,
		"seller_id":  seller.ID.String(),
		"first_name": seller.FirstName,
		"last_name":  seller.LastName,
		"missing":    missing,
	})

	return fmt.Errorf("%w: seller at index %d missing %v", ErrInvalidSeller, index, missing)
}
