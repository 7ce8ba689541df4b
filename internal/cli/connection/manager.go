package connection

import (
	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/infra/tlsroots"
)

// Manager owns the single ETAPI connection of an invocation.
type Manager struct {
	current  *Connection
	client   *ETAPIClient
	observer RequestObserver
}

// Connection holds what is needed to reach an ETAPI server.
type Connection struct {
	BaseURL    string
	Token      string
	AuthScheme string
	CAFile     string
	RateLimit  float64
}

// NewManager creates a new connection manager. observer may be nil.
func NewManager(observer RequestObserver) *Manager {
	return &Manager{observer: observer}
}

// Connect validates conn and builds its client. No request is sent.
func (m *Manager) Connect(conn *Connection) error {
	var missing []string
	if conn.BaseURL == "" {
		missing = append(missing, "TRILIUM_BASE_URL")
	}
	if conn.Token == "" {
		missing = append(missing, "TRILIUM_API_TOKEN")
	}
	if len(missing) > 0 {
		details := "missing env " + missing[0]
		if len(missing) == 2 {
			details += " and " + missing[1]
		}
		return domain.ErrMissingCredentials.WithDetails(details)
	}

	opts := []Option{
		WithAuthScheme(conn.AuthScheme),
		WithRateLimit(conn.RateLimit),
	}
	if m.observer != nil {
		opts = append(opts, WithObserver(m.observer))
	}
	if conn.CAFile != "" {
		pool, err := tlsroots.NewPool()
		if err != nil {
			return err
		}
		if err := pool.AddPath(conn.CAFile); err != nil {
			return domain.ErrConfig.WithDetails("ca_file").WithCause(err)
		}
		opts = append(opts, WithTLSConfig(pool.TLSConfig()))
	}

	m.client = NewETAPIClient(NewHTTPClient(conn.BaseURL, conn.Token, opts...))
	m.current = conn
	return nil
}

// Disconnect drops the current connection.
func (m *Manager) Disconnect() {
	m.current = nil
	m.client = nil
}

// Current returns the current connection.
func (m *Manager) Current() *Connection {
	return m.current
}

// Client returns the ETAPI client of the current connection, or nil.
func (m *Manager) Client() *ETAPIClient {
	return m.client
}

// IsConnected returns true if Connect succeeded.
func (m *Manager) IsConnected() bool {
	return m.current != nil
}
