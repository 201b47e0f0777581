// SPDX-License-Identifier: MPL-2.0

package repofromenv

import "fmt"

const (
	// CredentialNone marks a repository accessed anonymously.
	CredentialNone CredentialKind = iota
	// CredentialBasic marks a repository accessed with username and password.
	CredentialBasic
	// CredentialBearer marks a repository accessed with a bearer token.
	CredentialBearer
)

type (
	// CredentialKind identifies the variant held by a Credential.
	CredentialKind int

	// Credential is the authentication attached to a Repository. It is one
	// of NoCredential, BasicAuth or BearerToken.
	Credential interface {
		// Kind returns the variant of the credential.
		Kind() CredentialKind
		// Redacted describes the credential without revealing secrets.
		Redacted() string
		sealed()
	}

	// NoCredential means the repository needs no authentication.
	NoCredential struct{}

	// BasicAuth holds a username/password pair. Both fields are non-blank
	// when produced by discovery.
	BasicAuth struct {
		Username string
		Password string
	}

	// BearerToken holds an API token sent as "Authorization: Bearer <token>".
	BearerToken struct {
		Token string
	}

	// Repository is a discovered repository definition.
	Repository struct {
		// ID is unique among the repositories of one discovery run.
		ID string
		// URL is the repository location with placeholders already substituted.
		URL string
		// Credential is never nil for repositories returned by this package.
		Credential Credential
	}
)

// String returns the lowercase name of the credential kind.
func (k CredentialKind) String() string {
	switch k {
	case CredentialNone:
		return "none"
	case CredentialBasic:
		return "basic"
	case CredentialBearer:
		return "bearer"
	default:
		return fmt.Sprintf("CredentialKind(%d)", int(k))
	}
}

// Kind implements Credential.
func (NoCredential) Kind() CredentialKind { return CredentialNone }

// Redacted implements Credential.
func (NoCredential) Redacted() string { return "" }

func (NoCredential) sealed() {}

// Kind implements Credential.
func (BasicAuth) Kind() CredentialKind { return CredentialBasic }

// Redacted implements Credential. The username is shown, the password is not.
func (b BasicAuth) Redacted() string { return "user: " + b.Username }

func (BasicAuth) sealed() {}

// Kind implements Credential.
func (BearerToken) Kind() CredentialKind { return CredentialBearer }

// Redacted implements Credential.
func (BearerToken) Redacted() string { return "token: ****" }

func (BearerToken) sealed() {}

// Auth returns the repository credential, treating nil as NoCredential.
func (r Repository) Auth() Credential {
	if r.Credential == nil {
		return NoCredential{}
	}
	return r.Credential
}

// String renders the repository for log output with secrets redacted.
func (r Repository) String() string {
	if red := r.Auth().Redacted(); red != "" {
		return fmt.Sprintf("%s (id: %s %s)", r.URL, r.ID, red)
	}
	return fmt.Sprintf("%s (id: %s)", r.URL, r.ID)
}
