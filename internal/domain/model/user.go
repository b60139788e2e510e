package model

// UserIdentity is the authenticated principal as issued by the identity
// provider. It is read-only for this service; we never create or mutate
// provider accounts here.
type UserIdentity struct {
	ID    string // opaque provider id
	Email string
}
