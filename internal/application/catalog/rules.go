package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/application/dispatch"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func priceRule(price decimal.Decimal) []*shared.Error {
	if price.IsNegative() {
		return []*shared.Error{dispatch.Violation("basePrice", "basePrice must be greater than or equal to 0")}
	}
	return nil
}

// AddProductRules checks what struct tags cannot express on AddProductCommand
var AddProductRules = dispatch.RuleFunc[AddProductCommand](func(c AddProductCommand) []*shared.Error {
	return priceRule(c.BasePrice)
})

// UpdateProductRules checks what struct tags cannot express on UpdateProductCommand
var UpdateProductRules = dispatch.RuleFunc[UpdateProductCommand](func(c UpdateProductCommand) []*shared.Error {
	errs := priceRule(c.BasePrice)
	if c.StatusName != "" {
		if _, err := catalog.ParseProductStatus(c.StatusName); err != nil {
			errs = append(errs, dispatch.Violation("statusName", "statusName must be Active or Inactive"))
		}
	}
	return errs
})
