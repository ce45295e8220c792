package domain

// ClientType defines the category of a client as reported by the client
// directory. The type string is compared case-sensitively against these names.
type ClientType string

const (
	ClientPersonal ClientType = "PERSONAL"
	ClientBusiness ClientType = "BUSINESS"
)

// Client is the read-only projection of a client record resolved from the
// external client directory service.
type Client struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	DocumentNumber int    `json:"documentNumber"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}
