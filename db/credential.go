package db

// Credential is a single stored secret, addressed by its slot name. The
// token manager keeps the access and refresh tokens in two slots.
type Credential struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value,omitempty"`
}
