package aio

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
)

// Default connection settings.
const (
	DefaultHost            = "localhost"
	DefaultPort            = 8182
	DefaultPath            = "/gremlin"
	DefaultAlias           = "g"
	DefaultPoolSize        = 2
	DefaultQueueSize       = 64
	DefaultDialTimeout     = 10 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultWriteTimeout    = 5 * time.Second
	DefaultMaxMessageBytes = 64 << 20
)

// Options configures a Client and its connections.
//
// Options can be read from a TOML file with [LoadOptions]:
//
//	host = "gremlin.internal"
//	port = 8182
//	secure = true
//	username = "stephen"
//	password = "password"
//	pool_size = 4
//	request_timeout = "1m"
type Options struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	Path   string `toml:"path"`
	Secure bool   `toml:"secure"` // wss instead of ws

	// Credentials answer SASL PLAIN challenges. Empty means none.
	Username string `toml:"username"`
	Password string `toml:"password"`

	// Alias is the traversal source name bound on the server.
	Alias string `toml:"alias"`

	PoolSize        int           `toml:"pool_size"`
	QueueSize       int           `toml:"queue_size"` // outbound queue capacity per connection
	DialTimeout     time.Duration `toml:"dial_timeout"`
	RequestTimeout  time.Duration `toml:"request_timeout"` // zero disables
	WriteTimeout    time.Duration `toml:"write_timeout"`
	MaxMessageBytes int64         `toml:"max_message_bytes"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-"`
}

// DefaultOptions returns options for a local, unauthenticated server.
func DefaultOptions() Options {
	o := Options{RequestTimeout: DefaultRequestTimeout}
	o.SetDefaults()
	return o
}

// LoadOptions reads options from a TOML file. Unset fields take defaults.
func LoadOptions(path string) (Options, error) {
	o := Options{RequestTimeout: DefaultRequestTimeout}
	md, err := toml.DecodeFile(path, &o)
	if err != nil {
		return Options{}, gerrors.Wrap(gerrors.ErrCodeConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, gerrors.New(gerrors.ErrCodeConfig, "unknown option %q in %s", undecoded[0].String(), path)
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// SetDefaults fills every zero field with its default.
func (o *Options) SetDefaults() {
	if o.Host == "" {
		o.Host = DefaultHost
	}
	if o.Port == 0 {
		o.Port = DefaultPort
	}
	if o.Path == "" {
		o.Path = DefaultPath
	}
	if o.Alias == "" {
		o.Alias = DefaultAlias
	}
	if o.PoolSize == 0 {
		o.PoolSize = DefaultPoolSize
	}
	if o.QueueSize == 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.DialTimeout == 0 {
		o.DialTimeout = DefaultDialTimeout
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	if o.MaxMessageBytes == 0 {
		o.MaxMessageBytes = DefaultMaxMessageBytes
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options after defaults have been applied.
func (o *Options) Validate() error {
	if err := gerrors.ValidateHost(o.Host); err != nil {
		return err
	}
	if err := gerrors.ValidatePort(o.Port); err != nil {
		return err
	}
	if err := gerrors.ValidateEndpointPath(o.Path); err != nil {
		return err
	}
	if o.PoolSize < 1 {
		return gerrors.New(gerrors.ErrCodeConfig, "pool_size must be positive, got %d", o.PoolSize)
	}
	if o.QueueSize < 1 {
		return gerrors.New(gerrors.ErrCodeConfig, "queue_size must be positive, got %d", o.QueueSize)
	}
	if o.RequestTimeout < 0 {
		return gerrors.New(gerrors.ErrCodeConfig, "request_timeout must not be negative")
	}
	if (o.Username == "") != (o.Password == "") {
		return gerrors.New(gerrors.ErrCodeConfig, "username and password must be set together")
	}
	return nil
}

// Address returns host:port.
func (o Options) Address() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// URL returns the websocket endpoint.
func (o Options) URL() string {
	scheme := "ws"
	if o.Secure {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s%s", scheme, o.Address(), o.Path)
}

func (o Options) hasCredentials() bool {
	return o.Username != ""
}
