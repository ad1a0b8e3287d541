package tokens

import "context"

// Credentials is the persisted token pair. RefreshToken is always
// retained once obtained; AccessToken may be stale or empty and is only
// trusted after a successful use or an explicit refresh.
type Credentials struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token"`
}

// Store persists the credential record. Load reports found=false when no
// record exists yet; any other failure is an error. Save overwrites the
// whole record and returns only once it is durable.
type Store interface {
	Load(ctx context.Context) (creds Credentials, found bool, err error)
	Save(ctx context.Context, creds Credentials) error
}
