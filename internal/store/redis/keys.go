package redis

const (
	// KeyPrefixSession is the prefix for session keys
	KeyPrefixSession = "homedeck:session:"
)

// SessionKey returns the Redis key for a session by ID
func SessionKey(id string) string {
	return KeyPrefixSession + id
}
