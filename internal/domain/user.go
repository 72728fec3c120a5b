package domain

type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      string
}
