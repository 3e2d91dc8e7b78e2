package report

// Fixed report strings.
const (
	// MsgEntitiesFound heads every dump report.
	MsgEntitiesFound = "%d entity found"

	// MsgBatchHeader describes one decoded payload.
	MsgBatchHeader = "version: %d batch-id: %d batch-index: %d batch-size: %d"

	// MsgCredentialDetail is the debug line of one credential.
	MsgCredentialDetail = "name: %q issuer: %s -- alg: %s -- digits: %d -- secret: %s"

	// MsgNoCredentials is printed for a payload without credentials.
	MsgNoCredentials = "no credentials"

	// MsgCodeLine is one computed code with its remaining validity.
	MsgCodeLine = "%s  %2ds  %s"
)

const (
	prefixCredential = "  - "
	prefixDetail     = "  * "
	prefixFailure    = "  ! "
	indent           = "  "
)
