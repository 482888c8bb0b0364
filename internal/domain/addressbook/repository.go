package addressbook

import "context"

// Storage persists a whole AddressBook as one document.
//
// Load returns shared.ErrStoreNotFound when nothing has been saved yet, so the
// caller can start with an empty book. Any other error means the stored data
// could not be trusted and must not be overwritten blindly.
type Storage interface {
	Load(ctx context.Context) (*AddressBook, error)
	Save(ctx context.Context, book *AddressBook) error
	// Location describes where the document lives, for logs and messages.
	Location() string
}
