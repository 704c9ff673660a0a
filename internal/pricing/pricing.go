// Package pricing holds the money arithmetic for quote totals and
// best-price comparison. All comparisons run on decimals so that float
// artifacts in stored prices cannot flip a winner.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// BestPrice is the winning unit price for one item key.
type BestPrice struct {
	SupplierID   string  `json:"supplierId"`
	SupplierName string  `json:"supplierName,omitempty"`
	UnitPrice    float64 `json:"unitPrice"`
}

// QuoteTotal computes a supplier's quoted total over the RFQ lines targeted
// at it: sum of unit price times quantity. Lines the supplier did not quote
// (unit price zero) contribute nothing.
func QuoteTotal(items []domain.RFQItem, quote *domain.SupplierQuote) float64 {
	total := decimal.Zero
	for i := range items {
		if !items[i].TargetsSupplier(quote.SupplierID) {
			continue
		}
		qi := quote.ItemFor(items[i].Key())
		if qi == nil || qi.UnitPrice <= 0 {
			continue
		}
		price := decimal.NewFromFloat(qi.UnitPrice)
		qty := decimal.NewFromFloat(items[i].Quantity)
		total = total.Add(price.Mul(qty))
	}
	f, _ := total.Float64()
	return f
}

// BestPrices returns, per item key, the lowest positive unit price across
// the given quotes. A zero unit price means the supplier did not quote the
// line and is excluded. On an exact tie the supplier appearing first in
// quote order keeps the win.
func BestPrices(items []domain.RFQItem, quotes []domain.SupplierQuote) map[string]BestPrice {
	best := make(map[string]BestPrice)
	for i := range items {
		key := items[i].Key()
		var winner *BestPrice
		var winnerPrice decimal.Decimal
		for q := range quotes {
			qi := quotes[q].ItemFor(key)
			if qi == nil || qi.UnitPrice <= 0 {
				continue
			}
			price := decimal.NewFromFloat(qi.UnitPrice)
			if winner == nil || price.LessThan(winnerPrice) {
				winner = &BestPrice{
					SupplierID:   quotes[q].SupplierID.String(),
					SupplierName: quotes[q].SupplierName,
					UnitPrice:    qi.UnitPrice,
				}
				winnerPrice = price
			}
		}
		if winner != nil {
			best[key] = *winner
		}
	}
	return best
}

// ContractTotal computes the direct-award amount: sum of contract price
// times requested quantity over the request's items. priceFor maps an item's
// material id to its contract price.
func ContractTotal(items []domain.PurchaseRequestItem, priceFor map[string]float64) float64 {
	total := decimal.Zero
	for i := range items {
		if items[i].MaterialID == nil {
			continue
		}
		price, ok := priceFor[items[i].MaterialID.String()]
		if !ok {
			continue
		}
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(items[i].Quantity)))
	}
	f, _ := total.Float64()
	return f
}
