package services

import (
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// PriceSelector is the variant choice on one cart line. At most one of
// AgeGroup and Size may be set; selecting one clears the other on the
// client, and the server rejects lines carrying both.
type PriceSelector struct {
	AgeGroup string
	Size     string
}

// ResolveUnitPrice computes the unit price for a product and selector.
// Pure function, no I/O.
//
// Tier lists override the base price when the matching selector is
// given. A line with no selector against an age-priced product takes
// the first age tier (the quick-add path, where no selector UI is
// shown); size-priced products fall back to the base price instead.
// Discount display via OriginalPrice never affects the result.
func ResolveUnitPrice(p *models.Product, sel PriceSelector) (float64, error) {
	if sel.AgeGroup != "" && sel.Size != "" {
		return 0, apperr.New(apperr.Validation, "Choose either an age group or a size, not both")
	}

	if sel.AgeGroup != "" {
		for _, t := range p.AgePrices {
			if t.Age == sel.AgeGroup {
				return t.Price, nil
			}
		}
		return 0, apperr.Newf(apperr.Validation, "No price for age group %q", sel.AgeGroup)
	}

	if sel.Size != "" {
		for _, t := range p.SizePrices {
			if t.Size == sel.Size {
				return t.Price, nil
			}
		}
		return 0, apperr.Newf(apperr.Validation, "No price for size %q", sel.Size)
	}

	if len(p.AgePrices) > 0 {
		return p.AgePrices[0].Price, nil
	}
	return p.Price, nil
}
