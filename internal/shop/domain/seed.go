package domain

// DefaultProducts is the seed catalog.
func DefaultProducts() []Product {
	return []Product{
		{ID: "p1", Code: "DR-001", Name: "린넨 원피스 (Beige)", Category: "Dress", BasePrice: 89000},
		{ID: "p2", Code: "BG-002", Name: "자수 에코백", Category: "Bag", BasePrice: 35000},
		{ID: "p3", Code: "BL-003", Name: "와일드플라워 블라우스", Category: "Top", BasePrice: 62000},
		{ID: "p4", Code: "SK-004", Name: "코튼 롱 스커트", Category: "Skirt", BasePrice: 45000},
		{ID: "p5", Code: "ACC-005", Name: "실크 스카프", Category: "Accessory", BasePrice: 28000},
	}
}

// DefaultInventory is the seed stock, one record per seed product.
func DefaultInventory() []InventoryRecord {
	return []InventoryRecord{
		{ID: "1", ProductID: "p1", ProductName: "린넨 원피스 (Beige)", Stock: 5, Image: "👗"},
		{ID: "2", ProductID: "p2", ProductName: "자수 에코백", Stock: 0, RestockDate: "2025-02-15", Image: "👜"},
		{ID: "3", ProductID: "p3", ProductName: "와일드플라워 블라우스", Stock: 12, Image: "👚"},
		{ID: "4", ProductID: "p4", ProductName: "코튼 롱 스커트", Stock: 0, Image: DefaultInventoryImage},
		{ID: "5", ProductID: "p5", ProductName: "실크 스카프", Stock: 0, Image: DefaultInventoryImage},
	}
}

// DefaultOrders is the seed order ledger, newest first.
func DefaultOrders() []Order {
	return []Order{
		{
			ID: "101", CustomerName: "김민지", ContactInfo: "@minji_daily", Source: SourceInstagram,
			ProductName: "린넨 원피스 (Beige)", Quantity: 1, Status: StatusShipped,
			TrackingNumber: "CJ-1234-5678", ShippingDate: "2025-02-06",
		},
		{
			ID: "102", CustomerName: "이서준", ContactInfo: "@seojun_lee", Source: SourceInstagram,
			ProductName: "자수 에코백", Quantity: 1, Status: StatusPending,
		},
	}
}

// DefaultCategories is the seed category registry.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat1", Name: "Dress", Prefix: "DR"},
		{ID: "cat2", Name: "Bag", Prefix: "BG"},
		{ID: "cat3", Name: "Top", Prefix: "TOP"},
		{ID: "cat4", Name: "Skirt", Prefix: "SK"},
		{ID: "cat5", Name: "Accessory", Prefix: "ACC"},
		{ID: "cat6", Name: "Outer", Prefix: "OT"},
		{ID: "cat7", Name: "Pants", Prefix: "PT"},
	}
}

// DefaultInstagram is the disconnected link state.
func DefaultInstagram() InstagramConfig {
	return InstagramConfig{}
}
