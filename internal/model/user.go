package model

// User is an entry of the credential reference file. Users are never
// created or changed by the application.
type User struct {
	DisplayName  string `json:"DisplayName"`
	EmailAddress string `json:"EmailAddress"`
	Username     string `json:"Username" validate:"required"`
	Password     string `json:"Password"`
}

// Fields returns the session-token values in storage order.
// The password is never part of it.
func (u User) Fields() []string {
	return []string{u.DisplayName, u.EmailAddress, u.Username}
}
