package catalog

import "github.com/shopspring/decimal"

const dinnerSides = "Includes baked potato, coleslaw, dinner roll, butter, whoopie pie, & a drink."

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Default is the built-in menu used when no database is configured.
func Default() *Catalog {
	c, err := New(
		// Dinners
		MenuItem{ID: "dinner_half_chicken", Category: "Dinners", Name: "Half Chicken Dinner", Price: price("15.50"), Description: dinnerSides},
		MenuItem{ID: "dinner_leg_thigh", Category: "Dinners", Name: "Leg & Thigh Dinner", Price: price("13.00"), Description: dinnerSides},
		MenuItem{ID: "dinner_pulled_pork", Category: "Dinners", Name: "Pulled Pork Dinner", Price: price("16.50"), Description: dinnerSides},
		MenuItem{ID: "dinner_rib", Category: "Dinners", Name: "Rib Dinner (Half Rack)", Price: price("18.75"), Description: dinnerSides},
		MenuItem{ID: "dinner_brisket", Category: "Dinners", Name: "Brisket Dinner", Price: price("26.00"), Description: dinnerSides},

		// Singles
		MenuItem{ID: "single_half_chicken", Category: "Single Items", Name: "Half Chicken", Price: price("9.50")},
		MenuItem{ID: "single_leg_thigh", Category: "Single Items", Name: "Leg & Thigh", Price: price("6.00")},
		MenuItem{ID: "single_pp_sand_combo", Category: "Single Items", Name: "Pulled Pork Sandwich (with chips & drink)", Price: price("11.00")},
		MenuItem{ID: "single_ribs_full", Category: "Single Items", Name: "Full Rack Ribs", Price: price("24.99")},
		MenuItem{ID: "single_ribs_half", Category: "Single Items", Name: "Half Rack Ribs", Price: price("13.00")},
		MenuItem{ID: "single_brisket_sand", Category: "Single Items", Name: "Brisket Sandwich (with coleslaw & sauce)", Price: price("16.00")},
		MenuItem{ID: "single_pp_sand", Category: "Single Items", Name: "Pulled Pork Sandwich", Price: price("8.00")},

		// Sides & extras
		MenuItem{ID: "side_pp_quart", Category: "Sides & Extras", Name: "Quart Pulled Pork", Price: price("18.00")},
		MenuItem{ID: "side_pp_pint", Category: "Sides & Extras", Name: "Pint Pulled Pork", Price: price("10.00")},
		MenuItem{ID: "side_coleslaw_quart", Category: "Sides & Extras", Name: "Quart Coleslaw", Price: price("9.99")},
		MenuItem{ID: "side_coleslaw_pint", Category: "Sides & Extras", Name: "Pint Coleslaw", Price: price("5.25")},
		MenuItem{ID: "side_beans_8oz", Category: "Sides & Extras", Name: "8 oz Smoked Beans", Price: price("4.25")},
		MenuItem{ID: "side_brisket_pint", Category: "Sides & Extras", Name: "Pint of Brisket", Price: price("24.50")},
		MenuItem{ID: "side_bbq_beans_pint", Category: "Sides & Extras", Name: "Pint Smoked BBQ Beans", Price: price("8.00")},
		MenuItem{ID: "side_bbq_beans_quart", Category: "Sides & Extras", Name: "Quart Smoked BBQ Beans", Price: price("14.75")},
		MenuItem{ID: "side_whoopie", Category: "Sides & Extras", Name: "Whoopie Pie", Price: price("2.00")},
		MenuItem{ID: "side_whoopie_6", Category: "Sides & Extras", Name: "6 Whoopie Pies", Price: price("10.00")},
		MenuItem{ID: "side_drink", Category: "Sides & Extras", Name: "Drink", Price: price("2.00")},
		MenuItem{ID: "side_sauce_pint", Category: "Sides & Extras", Name: "BBQ Sauce (1 Pint)", Price: price("12.00"), Description: "Limited amounts per week."},
	)
	if err != nil {
		panic(err)
	}
	return c
}
