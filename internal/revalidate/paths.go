package revalidate

import "fmt"

// Canonical paths of the cached storefront and admin pages. Every mutation
// marks exactly the paths that could surface the mutated entity.
const (
	PathHome        = "/"
	PathProducts    = "/products"
	PathCollections = "/collections"

	PathAdminProducts    = "/admin/products"
	PathAdminCategories  = "/admin/categories"
	PathAdminCollections = "/admin/collections"
	PathAdminHeroSlides  = "/admin/hero-slides"
	PathAdminOrders      = "/admin/orders"

	PathAccountOrders = "/account/orders"
)

func PathProduct(id string) string { return fmt.Sprintf("/products/%s", id) }

func PathCollection(slug string) string { return fmt.Sprintf("/collections/%s", slug) }

func PathAdminCategoryEdit(id string) string { return fmt.Sprintf("/admin/categories/%s/edit", id) }

func PathAdminProductEdit(id string) string { return fmt.Sprintf("/admin/products/%s/edit", id) }
