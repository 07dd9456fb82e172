package rsmq

// Options configures the connection a facade opens to Redis and the
// namespace the queue engine operates under.
type Options struct {
	// Host is the Redis server hostname or IP address.
	Host string
	// Port is the Redis server port.
	Port int
	// DB is the Redis logical database number.
	DB int
	// Username is the optional Redis ACL username.
	Username string
	// Password is the optional Redis AUTH password.
	Password string
	// NS is the key namespace every queue lives under. Multiple independent
	// rsmq instances can share one Redis server by using distinct
	// namespaces.
	NS string
	// Realtime enables a pub/sub notification published on every successful
	// send, carrying the queue's new message count.
	Realtime bool
	// PoolSize bounds the number of physical connections a pooled client
	// keeps open. Ignored by NewClient, which always uses one connection.
	PoolSize int
	// MinIdleConns is the minimum number of idle connections a pooled
	// client maintains. Ignored by NewClient.
	MinIdleConns int
	// TLS enables a TLS connection to Redis using the certificate material
	// below. When false, the other TLS fields are ignored.
	TLS bool
	// ClientCertFile and ClientKeyFile are the client certificate/key pair
	// presented to Redis when TLS client authentication is required.
	ClientCertFile string
	ClientKeyFile  string
	// CACertFile, when set, is used instead of the system trust store to
	// verify the Redis server's certificate.
	CACertFile string
	// SkipTLSVerification disables server certificate verification. It
	// exists for talking to self-signed test deployments and must not be
	// used against production Redis instances.
	SkipTLSVerification bool
}

// DefaultOptions returns the connection defaults: a local Redis instance on
// db 0 under the "rsmq" namespace with realtime notifications disabled.
func DefaultOptions() Options {
	return Options{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		NS:           "rsmq",
		Realtime:     false,
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

func (o Options) namespace() string {
	if o.NS == "" {
		return "rsmq"
	}
	return o.NS
}

func (o Options) addr() string {
	host := o.Host
	if host == "" {
		host = "localhost"
	}
	port := o.Port
	if port == 0 {
		port = 6379
	}
	return addrJoin(host, port)
}
