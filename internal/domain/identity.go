package domain

// Identity is the stable caller identity produced by the auth gate.
// The booking engine trusts Subject and never inspects credentials.
type Identity struct {
	Subject string
}
