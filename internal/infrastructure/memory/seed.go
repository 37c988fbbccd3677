package memory

import (
	"github.com/shopspring/decimal"

	"github.com/spendperks/rewards-api/internal/core/domain"
)

// Static catalog data. Treated as a fixed external dataset: general perks and
// each partner's launch deals never change at runtime, only dynamic deals are
// appended next to them.

func seedGeneralPerks() []domain.Perk {
	return []domain.Perk{
		{ID: 1, Name: "Coffee Voucher", Cost: decimal.NewFromInt(5), Icon: "coffee", Category: "Food & Drink", Description: "£5 off at Costa Coffee"},
		{ID: 2, Name: "Gym Pass", Cost: decimal.NewFromInt(15), Icon: "dumbbell", Category: "Fitness", Description: "1 month free gym access"},
		{ID: 3, Name: "Shopping Discount", Cost: decimal.NewFromInt(10), Icon: "shopping-bag", Category: "Shopping", Description: "10% off at ASOS"},
		{ID: 4, Name: "Rent Discount", Cost: decimal.NewFromInt(25), Icon: "home", Category: "Housing", Description: "£25 off next rent payment"},
		{ID: 5, Name: "Premium Perks Box", Cost: decimal.NewFromInt(50), Icon: "gift", Category: "Special", Description: "Mystery box of student essentials"},
		{ID: 6, Name: "Entertainment Pass", Cost: decimal.NewFromInt(20), Icon: "sparkles", Category: "Entertainment", Description: "Cinema tickets for 2"},
	}
}

func seedPartners() []domain.Partner {
	return []domain.Partner{
		{
			ID: 1, Name: "Aldi", Slug: "aldi", Logo: "/images/partners/aldi-logo.png", Route: "/perks/aldi",
			Deals: []domain.Deal{
				{ID: 1, Title: "Off-Peak Saver", Description: "5% cashback on weekday shops", Icon: "percent", FullDescription: "Shop on any weekday (Mon-Fri) to get 5% cashback on your entire shop."},
				{ID: 2, Title: "Study-Session Bundle", Description: "15% off on Drinks, Snacks & Easy Meals", Icon: "coffee", FullDescription: "Get 15% off when you buy one item from each category: Drinks, Snacks, and Easy Meals."},
				{ID: 3, Title: "Flatmate Feast Bonus", Description: "Free pizza with £60+ spend", Icon: "pizza", FullDescription: "Spend over £60 in one group transaction and get a free pizza for the flat."},
				{ID: 4, Title: "End-of-Loan Recipe Challenge", Description: "Scan 3 pantry items to get a recipe and 25% off the missing ingredients.", Icon: "chef-hat", FullDescription: "Scan 3 pantry items to get a recipe and 25% off the missing ingredients."},
				{ID: 5, Title: "Fresh Start Challenge", Description: "Buy 5 different fresh produce items on a Monday or Tuesday to get £2 cashback.", Icon: "leaf", FullDescription: "Buy 5 different fresh produce items on a Monday or Tuesday to get £2 cashback."},
			},
		},
		{
			ID: 2, Name: "Lidl", Slug: "lidl", Logo: "/images/partners/lidl-logo.png", Route: "/perks/lidl",
			Deals: []domain.Deal{
				{ID: 1, Title: "Bakery Boost", Description: "10% off all bakery items", Icon: "coffee", FullDescription: "Get 10% off all bakery items when you shop at Lidl."},
				{ID: 2, Title: "Snack Attack", Description: "Buy 2 get 1 free on snacks", Icon: "gift", FullDescription: "Buy 2 get 1 free on selected snacks and treats."},
				{ID: 3, Title: "Weekly Saver", Description: "£5 off £30 weekly shop", Icon: "percent", FullDescription: "Spend £30 or more in a single transaction and get £5 cashback."},
			},
		},
		{
			ID: 3, Name: "Morrisons", Slug: "morrisons", Logo: "/images/partners/morrisons-logo.png", Route: "/perks/morrisons",
			Deals: []domain.Deal{
				{ID: 1, Title: "Meal Deal Magic", Description: "20% off all meal deals", Icon: "shopping-bag", FullDescription: "Get 20% off all meal deals when you shop at Morrisons."},
				{ID: 2, Title: "Breakfast Buddy", Description: "Free coffee with breakfast purchase", Icon: "coffee", FullDescription: "Get a free coffee when you purchase any breakfast item."},
				{ID: 3, Title: "Sunday Special", Description: "Extra student discount on Sundays", Icon: "percent", FullDescription: "Get an extra 10% student discount on all purchases every Sunday."},
			},
		},
		{
			ID: 4, Name: "Co-op", Slug: "coop", Logo: "/images/partners/coop-logo.png", Route: "/perks/coop",
			Deals: []domain.Deal{
				{ID: 1, Title: "Tuesday Treat", Description: "Double points every Tuesday", Icon: "sparkles", FullDescription: "Earn double reward points on all purchases made on Tuesdays."},
				{ID: 2, Title: "Own Brand Bonus", Description: "15% off Co-op own-brand products", Icon: "percent", FullDescription: "Get 15% off all Co-op own-brand products."},
				{ID: 3, Title: "Fresh Five", Description: "Buy 5 fresh items, get £2 cashback", Icon: "apple", FullDescription: "Buy 5 different fresh produce items and get £2 cashback."},
			},
		},
	}
}
