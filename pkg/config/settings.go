package config

// Settings holds the subset of rsmq.Options that rsmqctl and the admin
// server read from the environment/config file, plus the ambient knobs the
// binary itself needs (log level/format, admin bind address).
type Settings struct {
	RedisHost string
	RedisPort int
	RedisDB   int
	RedisUser string
	RedisPass string

	Namespace string
	Realtime  bool

	LogLevel  string
	LogFormat string

	AdminAddr string
}

// LoadSettings reads Settings out of an already-built Loader, applying the
// same defaults rsmq.DefaultOptions() uses so a binary started with zero
// configuration behaves the same as an in-process NewClient call.
func LoadSettings(l *Loader) (*Settings, error) {
	v, err := l.Load()
	if err != nil {
		return nil, err
	}

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("namespace", "rsmq")
	v.SetDefault("realtime", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("admin.addr", ":8420")

	return &Settings{
		RedisHost: v.GetString("redis.host"),
		RedisPort: v.GetInt("redis.port"),
		RedisDB:   v.GetInt("redis.db"),
		RedisUser: v.GetString("redis.username"),
		RedisPass: v.GetString("redis.password"),
		Namespace: v.GetString("namespace"),
		Realtime:  v.GetBool("realtime"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		AdminAddr: v.GetString("admin.addr"),
	}, nil
}
