package repository

// コレクションとファイルの対応
const (
	productsFile    = "products.json"
	categoriesFile  = "categories.json"
	membershipsFile = "memberships.json"
	promotionsFile  = "promotions.json"
	cartFile        = "cart.json"
	ordersFile      = "orders.json"
	usersFile       = "users.json"
	supportFile     = "support_messages.json"
)
