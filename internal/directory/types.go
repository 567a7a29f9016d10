package directory

import "fmt"

// Kind identifies one of the remote collections.
type Kind string

const (
	KindProducts Kind = "products"
	KindUsers    Kind = "users"
)

// Page is one slice of a remote collection, already mapped into entity records.
type Page[T any] struct {
	Items []T
	Total int
	Skip  int
	Limit int
}

// Product is a catalog entry, offered as an "experience level".
type Product struct {
	ID        int     `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	Category  string  `json:"category" yaml:"category"`
	Price     float64 `json:"price" yaml:"price"`
	Thumbnail string  `json:"thumbnail" yaml:"thumbnail"`
}

// Key returns the product identity.
func (p Product) Key() int { return p.ID }

// PriceLabel formats the price the way the catalog shows it.
func (p Product) PriceLabel() string {
	if p.Price == float64(int64(p.Price)) {
		return fmt.Sprintf("$%d", int64(p.Price))
	}
	return fmt.Sprintf("$%.2f", p.Price)
}

// User is a directory entry, offered as a "preferred department".
type User struct {
	ID          int    `json:"id" yaml:"id"`
	FirstName   string `json:"firstName" yaml:"first_name"`
	LastName    string `json:"lastName" yaml:"last_name"`
	Email       string `json:"email" yaml:"email"`
	Image       string `json:"image" yaml:"image"`
	CompanyName string `json:"companyName" yaml:"company"`
}

// Key returns the user identity.
func (u User) Key() int { return u.ID }

// FullName joins first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// productsEnvelope is the wire shape of GET /products.
type productsEnvelope struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// usersEnvelope is the wire shape of GET /users.
type usersEnvelope struct {
	Users []wireUser `json:"users"`
	Total int        `json:"total"`
	Skip  int        `json:"skip"`
	Limit int        `json:"limit"`
}

type wireUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Image     string `json:"image"`
	Company   struct {
		Name string `json:"name"`
	} `json:"company"`
}

func (w wireUser) toUser() User {
	return User{
		ID:          w.ID,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Email:       w.Email,
		Image:       w.Image,
		CompanyName: w.Company.Name,
	}
}
