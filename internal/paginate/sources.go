package paginate

import (
	"context"

	"github.com/talentdesk/applywizard/internal/directory"
)

// Products pages through the product catalog.
func Products(c *directory.Client) FetchFunc[directory.Product] {
	return func(ctx context.Context, cur PageCursor) (directory.Page[directory.Product], error) {
		return c.FetchProducts(ctx, cur.Page, cur.PageSize)
	}
}

// Users pages through the user directory.
func Users(c *directory.Client) FetchFunc[directory.User] {
	return func(ctx context.Context, cur PageCursor) (directory.Page[directory.User], error) {
		return c.FetchUsers(ctx, cur.Page, cur.PageSize)
	}
}
