package domain

import "go.trai.ch/zerr"

// VaultField is one field of a login-style vault item.
type VaultField struct {
	// Designation marks the field's role (e.g., "username", "password").
	Designation string

	// Name is the field's display name.
	Name string

	// Type is the field's input type (e.g., "P" for password fields).
	Type string

	// Value is the field's content.
	Value string
}

// VaultDetails holds either a bare password or a login field list.
type VaultDetails struct {
	// Password is set for bare password items.
	Password string

	// Fields is set for login items.
	Fields []VaultField
}

// VaultItem is a decoded vault item.
type VaultItem struct {
	// UUID is the item's identifier.
	UUID string

	// VaultUUID identifies the vault containing the item.
	VaultUUID string

	// Title is the item's display title.
	Title string

	// Info is the item's secondary overview line (typically the username).
	Info string

	// Details carries the secret payload.
	Details VaultDetails
}

// Password returns the item's password: the bare password detail when
// present, otherwise the first login field designated as a password.
// Returns ErrVaultNoPassword when the item carries neither.
func (i *VaultItem) Password() (string, error) {
	if i.Details.Password != "" {
		return i.Details.Password, nil
	}
	for _, f := range i.Details.Fields {
		if f.Designation == "password" && f.Value != "" {
			return f.Value, nil
		}
	}
	return "", zerr.With(ErrVaultNoPassword, "uuid", i.UUID)
}
