package menu

// Calculate derives an item's unit price from its base price and the
// selected options. Returns nil when the item carries no price data at
// all; such items can still be ordered and count as zero in totals.
//
// When any selected option carries its own non-zero price, the sum of
// those option prices IS the unit price; the base price is not added on
// top. When no selected option contributes a price, the base price wins.
// A priced item whose selected options are all zero-priced therefore
// resolves to the base price; clients rely on that, so it stays.
func Calculate(item *Item, selected map[string]string) *float64 {
	if item.Price != nil && len(item.Options) == 0 {
		return clone(item.Price)
	}

	if len(item.Options) > 0 {
		var total float64
		priced := false

		for category, choices := range item.Options {
			sel, ok := selected[category]
			if !ok {
				continue
			}
			for _, choice := range choices {
				if choice.Price == nil || choice.Value != sel {
					continue
				}
				if *choice.Price != 0 {
					total += *choice.Price
					priced = true
				}
			}
		}

		if priced {
			return &total
		}
		if item.Price != nil {
			return clone(item.Price)
		}
	}

	return nil
}

func clone(v *float64) *float64 {
	c := *v
	return &c
}
