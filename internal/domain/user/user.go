package user

import "errors"

var ErrNotFound = errors.New("user: not found")

// User is the slice of the profile store this core reads and writes: contact
// details for checkout validation and the order history reference list.
type User struct {
	ID        string
	FirstName string
	EmailID   string
	Phone     string
	Role      string
	OrderIDs  []string
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.OrderIDs = append([]string(nil), u.OrderIDs...)
	return &clone
}
