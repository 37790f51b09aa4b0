package notify

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"net"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/dojiwatch/config"
)

// smtpRelay is a single-connection SMTP server speaking implicit TLS.
type smtpRelay struct {
	ln         net.Listener
	rejectAuth bool

	mu    sync.Mutex
	cmds  []string
	auth  string // decoded AUTH PLAIN response
	data  string
	done  chan struct{}
	roots *x509.CertPool
}

func newSMTPRelay(t *testing.T, rejectAuth bool) *smtpRelay {
	t.Helper()

	// borrow httptest's self-signed certificate (valid for 127.0.0.1)
	certSrv := httptest.NewTLSServer(http.NotFoundHandler())
	t.Cleanup(certSrv.Close)
	roots := x509.NewCertPool()
	roots.AddCert(certSrv.Certificate())

	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: certSrv.TLS.Certificates})
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	r := &smtpRelay{ln: ln, rejectAuth: rejectAuth, done: make(chan struct{}), roots: roots}
	go r.serve()
	return r
}

func (r *smtpRelay) port() int {
	return r.ln.Addr().(*net.TCPAddr).Port
}

func (r *smtpRelay) record(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, line)
}

func (r *smtpRelay) serve() {
	defer close(r.done)

	conn, err := r.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP ready")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		r.record(line)

		fields := strings.Fields(line)
		verb := ""
		if len(fields) > 0 {
			verb = strings.ToUpper(fields[0])
		}
		switch verb {
		case "EHLO":
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250-AUTH PLAIN LOGIN")
			_ = tp.PrintfLine("250 HELP")
		case "AUTH":
			if len(fields) == 3 {
				raw, _ := base64.StdEncoding.DecodeString(fields[2])
				r.mu.Lock()
				r.auth = string(raw)
				r.mu.Unlock()
			}
			if r.rejectAuth {
				_ = tp.PrintfLine("535 5.7.8 Username and Password not accepted")
			} else {
				_ = tp.PrintfLine("235 2.7.0 Accepted")
			}
		case "DATA":
			_ = tp.PrintfLine("354 Go ahead")
			body, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			r.mu.Lock()
			r.data = string(body)
			r.mu.Unlock()
			_ = tp.PrintfLine("250 2.0.0 OK queued")
		case "*":
			_ = tp.PrintfLine("501 5.5.2 Cancelled")
		case "QUIT":
			_ = tp.PrintfLine("221 2.0.0 Bye")
			return
		default:
			_ = tp.PrintfLine("250 2.0.0 OK")
		}
	}
}

func (r *smtpRelay) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(10 * time.Second):
		t.Fatal("smtp session did not finish")
	}
}

func (r *smtpRelay) commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.cmds...)
}

func relayMailer(t *testing.T, r *smtpRelay) *Mailer {
	t.Helper()
	cfg := config.Default()
	cfg.Credentials = config.Credentials{User: "alerts@example.com", Password: "app-pwd"}
	cfg.Mail.Host = "127.0.0.1"
	cfg.Mail.Port = r.port()
	cfg.Mail.To = "desk@example.com"

	m, err := NewMailer(cfg, WithTLSConfig(&tls.Config{
		RootCAs:    r.roots,
		ServerName: "127.0.0.1",
		MinVersion: tls.VersionTLS12,
	}))
	require.NoError(t, err)
	return m
}

func hasPrefix(cmds []string, prefix string) bool {
	for _, c := range cmds {
		if strings.HasPrefix(strings.ToUpper(c), prefix) {
			return true
		}
	}
	return false
}

func TestMailer_DeliversOverImplicitTLS(t *testing.T) {
	relay := newSMTPRelay(t, false)
	m := relayMailer(t, relay)

	require.NoError(t, m.Notify(context.Background(), sampleMatches()))
	relay.wait(t)

	cmds := relay.commands()
	assert.True(t, hasPrefix(cmds, "AUTH PLAIN "))
	assert.Contains(t, cmds, "MAIL FROM:<alerts@example.com>")
	assert.Contains(t, cmds, "RCPT TO:<desk@example.com>")
	assert.True(t, hasPrefix(cmds, "DATA"))
	assert.Equal(t, "QUIT", cmds[len(cmds)-1])

	relay.mu.Lock()
	defer relay.mu.Unlock()
	assert.Equal(t, "\x00alerts@example.com\x00app-pwd", relay.auth)
	assert.Contains(t, relay.data, "SBIN")
	assert.Contains(t, relay.data, "multipart/alternative")
}

func TestMailer_AuthRejected(t *testing.T) {
	relay := newSMTPRelay(t, true)
	m := relayMailer(t, relay)

	err := m.Notify(context.Background(), sampleMatches())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535")
	relay.wait(t)

	cmds := relay.commands()
	assert.True(t, hasPrefix(cmds, "AUTH PLAIN "))
	assert.False(t, hasPrefix(cmds, "MAIL FROM"))
	assert.False(t, hasPrefix(cmds, "DATA"))
}
